package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"idcache/internal/cache"
	"idcache/internal/domain"
	"idcache/internal/encryptor"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-interactive",
		Short: "Prompt for identity fields, generate a key, and save the record",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
				return errors.New("new-interactive needs a terminal; use \"idcache new\" in scripts")
			}
			return runInteractive(cmd, bufio.NewReader(in))
		},
	}
}

func runInteractive(cmd *cobra.Command, in *bufio.Reader) error {
	out := cmd.OutOrStdout()

	name, err := promptNonEmpty(out, in, "Name")
	if err != nil {
		return err
	}
	locType, err := promptDefault(out, in, "Location type", "local")
	if err != nil {
		return err
	}
	addr, err := promptDefault(out, in, "Address (empty for none)", "")
	if err != nil {
		return err
	}
	callsign, err := promptNonEmpty(out, in, "Callsign")
	if err != nil {
		return err
	}

	var loc domain.Location
	if addr == "" {
		loc = domain.LocalLocation(locType, callsign)
	} else {
		loc = domain.NewLocation(locType, addr, callsign)
	}

	scheme, err := promptScheme(out, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generating %s key material...\n", scheme)
	spec, err := encryptor.Generate(scheme)
	if err != nil {
		return err
	}
	fp, err := encryptor.Fingerprint(spec)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Fingerprint: %s\n", fp)

	key, id, err := appCtx.Mutator.Create(name, loc, spec, nil)
	if err != nil {
		return err
	}

	target, ok := appCtx.Source.Primary()
	if !ok {
		return writeJSON(cmd, map[string]domain.Identity{key: id})
	}
	save, err := promptDefault(out, in, fmt.Sprintf("Save to %s? [y/N]", target), "n")
	if err != nil {
		return err
	}
	if !strings.EqualFold(save, "y") {
		return writeJSON(cmd, map[string]domain.Identity{key: id})
	}

	if err := ensureCacheFile(target); err != nil {
		return err
	}
	if err := appCtx.Mutator.Merge(target, cache.File{key: id}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s to %s\n", name, target)
	return nil
}

// ensureCacheFile creates an empty cache file (and its directory) when the
// target does not exist yet, so a first run works against a fresh home.
func ensureCacheFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return cache.Write(path, cache.File{})
}

func promptNonEmpty(out io.Writer, in *bufio.Reader, label string) (string, error) {
	for {
		answer, err := prompt(out, in, label+": ")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintf(out, "%s must not be empty.\n", label)
	}
}

func promptDefault(out io.Writer, in *bufio.Reader, label, def string) (string, error) {
	suffix := ": "
	if def != "" {
		suffix = fmt.Sprintf(" [%s]: ", def)
	}
	answer, err := prompt(out, in, label+suffix)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func promptScheme(out io.Writer, in *bufio.Reader) (string, error) {
	schemes := encryptor.Schemes()
	for {
		answer, err := promptDefault(out, in,
			fmt.Sprintf("Key scheme (%s)", strings.Join(schemes, ", ")), "rsa")
		if err != nil {
			return "", err
		}
		for _, s := range schemes {
			if answer == s {
				return s, nil
			}
		}
		fmt.Fprintf(out, "Unknown scheme %q.\n", answer)
	}
}

func prompt(out io.Writer, in *bufio.Reader, text string) (string, error) {
	fmt.Fprint(out, text)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
