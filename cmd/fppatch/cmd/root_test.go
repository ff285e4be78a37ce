package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fppatch/internal/config"
	"fppatch/internal/gitutil"
)

type cleanRepo struct{}

func (cleanRepo) CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error) {
	return nil, nil
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	gitutil.SetRunner(cleanRepo{})
	t.Cleanup(func() { gitutil.SetRunner(gitutil.DefaultRunner{}) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppcfpopcodes.cpp")
	src := "void dppc_interpreter::ppc_fdivs(uint32_t opcode) {\n" +
		"    fpresult_update(0.0);\n" +
		"}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out := run(t, "patch", path)
	assert.Contains(t, out, "replacements: 1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fpresult_update(0.0, true);")

	// shorthand form on the already patched file
	out = run(t, path)
	assert.Contains(t, out, "replacements: 0")
}

func TestSeedsCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ppcinttests.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\nadd,0x7C000214\n"), 0o644))
	insn := filepath.Join(dir, "insn")
	dis := filepath.Join(dir, "dis")

	out := run(t, "seeds", "--target", insn, "--target", dis, csvPath)
	assert.Contains(t, out, "wrote 2 seeds")

	data, err := os.ReadFile(filepath.Join(dis, "ppcinttests-00001"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7C, 0x00, 0x02, 0x14}, data)
}

func TestProfileCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	run(t, "profile", path)

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), p)
}
