// Package seeds turns the CPU test-vector tables into fuzz corpus seeds: one
// 4-byte big-endian opcode per table row, written for each fuzz target.
package seeds

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// hexPattern is an opcode literal: "0x" and 1 to 8 hex digits.
var hexPattern = regexp.MustCompile(`^0x[0-9A-Fa-f]{1,8}$`)

// DefaultInputs are the test-vector tables, relative to the source root.
var DefaultInputs = []string{
	"cpu/ppc/test/ppcinttests.csv",
	"cpu/ppc/test/ppcfloattests.csv",
	"cpu/ppc/test/ppcdisasmtest.csv",
}

// DefaultTargets are the corpus directories of the instruction and
// disassembler fuzzers, relative to the source root.
var DefaultTargets = []string{
	"seeds/fuzz_ppc_insn",
	"seeds/fuzz_ppc_disasm",
}

// Options configures a generator run.
type Options struct {
	Inputs  []string // CSV tables, processed in parallel
	Targets []string // every seed is written to each of these
}

// DefaultOptions resolves DefaultInputs and DefaultTargets against root.
func DefaultOptions(root string) Options {
	var opts Options
	for _, p := range DefaultInputs {
		opts.Inputs = append(opts.Inputs, filepath.Join(root, p))
	}
	for _, p := range DefaultTargets {
		opts.Targets = append(opts.Targets, filepath.Join(root, p))
	}
	return opts
}

// Generate writes seeds for every input and returns the number of files
// written, one per target directory per qualifying row. Rows without an
// opcode literal are skipped. A missing input is an error, as are two inputs
// with the same base name since their seed names would collide.
func Generate(ctx context.Context, opts Options, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seen := make(map[string]string, len(opts.Inputs))
	for _, input := range opts.Inputs {
		stem := stemOf(input)
		if prev, ok := seen[stem]; ok {
			return 0, fmt.Errorf("inputs %s and %s share the seed name prefix %q", prev, input, stem)
		}
		seen[stem] = input
	}
	for _, dir := range opts.Targets {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create seed directory %s: %w", dir, err)
		}
	}

	var written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for _, input := range opts.Inputs {
		input := input
		g.Go(func() error {
			n, err := generateFile(ctx, input, opts.Targets)
			written.Add(int64(n))
			if err != nil {
				return err
			}
			logger.Debug("seeds extracted", zap.String("input", input), zap.Int("files", n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

// generateFile numbers rows the way a Python csv.reader enumerates them: one
// row per record, a quoted field spanning lines stays one row, and every
// blank line is an empty row of its own.
func generateFile(ctx context.Context, path string, targets []string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open test vectors %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	stem := stemOf(path)
	written := 0
	consumed := 0 // physical lines covered by records read so far
	offset := 0
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("%s: %w", path, err)
		}

		// csv.Reader drops blank lines; count them back in.
		line, _ := r.FieldPos(0)
		index += line - consumed - 1
		next := int(r.InputOffset())
		consumed += bytes.Count(data[offset:next], []byte("\n"))
		offset = next

		opcode, ok := ExtractOpcode(row)
		if !ok {
			continue
		}
		if err := writeSeed(targets, Name(stem, index), Encode(opcode)); err != nil {
			return written, err
		}
		written += len(targets)
	}
	return written, nil
}

// writeSeed writes the row's seed into every target, or into none: files
// already written for the row are removed when a later target fails.
func writeSeed(targets []string, name string, data []byte) error {
	for i, dir := range targets {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			for _, done := range targets[:i] {
				_ = os.Remove(filepath.Join(done, name))
			}
			return fmt.Errorf("failed to write seed %s: %w", name, err)
		}
	}
	return nil
}

func stemOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ExtractOpcode returns the first field, scanning left to right, that is an
// opcode literal once surrounding whitespace is trimmed.
func ExtractOpcode(row []string) (uint32, bool) {
	for _, tok := range row {
		tok = strings.TrimSpace(tok)
		if !hexPattern.MatchString(tok) {
			continue
		}
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			continue
		}
		return uint32(v), true
	}
	return 0, false
}

// Encode returns the opcode as 4 big-endian bytes.
func Encode(opcode uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, opcode)
}

// Name is the seed file name for row index of the table named stem.
func Name(stem string, index int) string {
	return fmt.Sprintf("%s-%05d", stem, index)
}
