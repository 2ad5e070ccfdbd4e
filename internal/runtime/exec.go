package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/manifest"
	"github.com/boxes-labs/boxes/internal/module"
)

// EnvFile is the optional per-module environment file.
const EnvFile = "module.env"

// ExecRuntime binds modules whose generators are implemented by an
// executable shipped in the module directory.
type ExecRuntime struct{}

// Load declares one generator type per manifest entry and joins each public
// type to its group. The entry executable must exist; it is not run here.
func (e *ExecRuntime) Load(ctx *module.Context) error {
	mod := ctx.Module
	if mod.Dir == "" {
		return fmt.Errorf("exec module %s must live on disk", mod.Path)
	}
	m := mod.Manifest

	entry := filepath.Join(mod.Dir, filepath.FromSlash(m.Entry))
	info, err := os.Stat(entry)
	if err != nil {
		return fmt.Errorf("module entry point not found at %s: %w", entry, err)
	}
	if info.IsDir() {
		return fmt.Errorf("module entry point %s is a directory", entry)
	}

	for _, decl := range m.Generators {
		t := declare(mod, entry, decl)
		mod.Bind(decl.Name, t)
		if decl.Group == "" || module.Private(decl.Name) {
			continue
		}
		if err := ctx.Join(decl.Group, t); err != nil {
			return err
		}
	}
	return nil
}

func declare(mod *module.Module, entry string, decl manifest.GeneratorDecl) *generator.Type {
	settings := make([]generator.Setting, len(decl.Settings))
	for i, s := range decl.Settings {
		settings[i] = generator.Setting{Name: s.Name, Default: s.DefaultString(), Help: s.Help}
	}

	opts := []generator.Option{generator.WithDescription(decl.Description)}
	if decl.DisplayName != "" {
		opts = append(opts, generator.WithDisplayName(decl.DisplayName))
	}

	dir, modPath, typeName := mod.Dir, mod.Path, decl.Name
	t := generator.NewType(typeName, func() generator.Generator {
		return &ExecGenerator{
			Entry:      entry,
			Dir:        dir,
			ModulePath: modPath,
			TypeName:   typeName,
			Params:     settings,
		}
	}, opts...)
	t.Module = modPath
	return t
}

// ExecGenerator runs `<entry> generate <TypeName> <json-args>` and copies
// the program's stdout to the output.
type ExecGenerator struct {
	Entry      string
	Dir        string
	ModulePath string
	TypeName   string
	Params     []generator.Setting
}

// Settings returns the settings declared in the manifest.
func (g *ExecGenerator) Settings() []generator.Setting {
	return g.Params
}

// Generate runs the entry program. A non-zero exit is returned as an error
// carrying the program's stderr.
func (g *ExecGenerator) Generate(ctx context.Context, w io.Writer, args generator.Args) error {
	argsJSON, err := json.Marshal(args.WithDefaults(g.Params))
	if err != nil {
		return fmt.Errorf("serializing generator arguments: %w", err)
	}

	env, err := buildEnv(g.Dir, g.ModulePath)
	if err != nil {
		return fmt.Errorf("building runtime environment: %w", err)
	}

	cmd := exec.CommandContext(ctx, g.Entry, "generate", g.TypeName, string(argsJSON))
	cmd.Dir = g.Dir
	cmd.Env = env

	var stderrBuf bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("generator %s.%s exited with code %d: %s",
				g.ModulePath, g.TypeName, exitErr.ExitCode(), strings.TrimSpace(stderrBuf.String()))
		}
		return fmt.Errorf("executing generator %s.%s: %w", g.ModulePath, g.TypeName, err)
	}
	return nil
}

// buildEnv inherits the current environment and adds the module variables
// and the contents of the module's env file, if any.
func buildEnv(dir, modPath string) ([]string, error) {
	env := os.Environ()
	env = setEnv(env, branding.EnvVar("MODULE_DIR"), dir)
	env = setEnv(env, branding.EnvVar("MODULE_PATH"), modPath)

	vars, err := godotenv.Read(filepath.Join(dir, EnvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("reading %s: %w", EnvFile, err)
	}
	for k, v := range vars {
		env = setEnv(env, k, v)
	}
	return env, nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
