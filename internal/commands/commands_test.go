package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/pstcrypt/internal/commands"
	"github.com/idelchi/pstcrypt/internal/config"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer

	root := commands.NewRootCommand(&config.Config{}, "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

//nolint:paralleltest // commands share the global viper instance
func TestEncodeThenDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mail.pst")
	plain := []byte("Subject: quarterly numbers\r\n")

	if err := os.WriteFile(path, plain, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "encode", "-q", "-m", "high", "-k", "0xdeadbeef", path); err != nil {
		t.Fatalf("encode: %v", err)
	}

	encoded, err := os.ReadFile(path + ".enc")
	if err != nil {
		t.Fatal(err)
	}

	want := bytes.Clone(plain)
	if err := pstcrypt.EncodeBlock(pstcrypt.ModeHigh, 0xdeadbeef, want); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(encoded, want) {
		t.Fatalf("encoded = %x, want %x", encoded, want)
	}

	if _, err := execute(t, "decode", "-q", "--mode", "cyclic", "--key", "3735928559", dir); err != nil {
		t.Fatalf("decode: %v", err)
	}

	decoded, err := os.ReadFile(path + ".dec")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(decoded, plain) {
		t.Errorf("decoded = %q, want %q", decoded, plain)
	}
}

//nolint:paralleltest // commands share the global viper instance
func TestShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.pst")

	if err := os.WriteFile(path, []byte{0x00}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "decode", "--show", "--mode", "compressible", "--block-size", "4KiB", path)
	if !errors.Is(err, cobraext.ErrExitGracefully) {
		t.Fatalf("decode --show error = %v, want ErrExitGracefully", err)
	}

	if _, err := os.Stat(path + ".dec"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("decode --show wrote an output file: %v", err)
	}
}

//nolint:paralleltest // commands share the global viper instance
func TestInvalidMode(t *testing.T) {
	if _, err := execute(t, "decode", "--mode", "rot13", "mail.pst"); err == nil {
		t.Error("decode --mode rot13 succeeded")
	}
}

//nolint:paralleltest // commands share the global viper instance
func TestEncodeRequiresPaths(t *testing.T) {
	if _, err := execute(t, "encode", "--mode", "high"); err == nil {
		t.Error("encode without paths succeeded")
	}
}

//nolint:paralleltest // commands share the global viper instance
func TestTables(t *testing.T) {
	out, err := execute(t, "tables", "high1")
	if err != nil {
		t.Fatalf("tables: %v", err)
	}

	if !strings.HasPrefix(out, "high1:\n  00: 41 36 13 62") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "tables", "high9"); err == nil {
		t.Error("tables high9 succeeded")
	}
}

//nolint:paralleltest // modifies the environment
func TestEnvironment(t *testing.T) {
	t.Setenv("PSTCRYPT_MODE", "compressible")
	t.Setenv("PSTCRYPT_DECODE_EXT", ".plain")

	dir := t.TempDir()
	path := filepath.Join(dir, "mail.pst")

	if err := os.WriteFile(path, []byte{0x00, 0x01}, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "decode", "-q", path); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := os.ReadFile(path + ".plain")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, []byte{0x47, 0xf1}) {
		t.Errorf("decoded = %x, want 47f1", got)
	}
}

//nolint:paralleltest // commands share the global viper instance
func TestUnknownSubcommand(t *testing.T) {
	_, err := execute(t, "decdoe", "mail.pst")
	if err == nil {
		t.Fatal("unknown subcommand succeeded")
	}

	if !strings.Contains(err.Error(), "decdoe") {
		t.Errorf("error = %q, want it to name the subcommand", err)
	}
}
