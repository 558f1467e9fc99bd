// cmd/oorgen/main.go
package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"oorgen/internal/genstmt"
	"oorgen/internal/ierrors"
	"oorgen/internal/langstd"
	"oorgen/internal/policy"
	"oorgen/internal/randsrc"
	"oorgen/internal/symtab"
)

const version = "0.1"

func init() {
	// Keep the built-in version string in a form that round-trips through
	// semver.Compare, since releaseCompare (below) relies on it when
	// parseSeed reports a seed produced by a newer tool.
	if !semver.IsValid("v" + version + ".0") {
		panic("oorgen: built-in version string is not semver-shaped: " + version)
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// releaseCompare orders two VV-form version tags (e.g. "01", "02") the way
// semver.Compare orders the dotted versions they stand for ("v0.1.0",
// "v0.2.0"): the last digit is the minor version, the rest the major.
// parseSeed uses it to tell a seed from a newer tool apart from any other
// version-tag mismatch. A tag shorter than two characters is invalid and
// orders below every valid one.
func releaseCompare(vv1, vv2 string) int {
	asSemver := func(vv string) string {
		if len(vv) < 2 {
			return ""
		}
		return "v" + vv[:len(vv)-1] + "." + vv[len(vv)-1:] + ".0"
	}
	return semver.Compare(asSemver(vv1), asSemver(vv2))
}

type options struct {
	quiet  bool
	outDir string
	seed   uint64
	mode   langstd.BitMode
	std    langstd.Standard
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		if err == errShowVersionOnly {
			fmt.Println(version)
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return -1
	}

	runID := uuid.New()
	rng := randsrc.NewPCG(opts.seed)
	p := policy.Default(opts.std, opts.mode)
	ctx := symtab.NewRoot(p, opts.mode, opts.std, rng)

	if !opts.quiet {
		log.Printf("oorgen run %s: std=%s mode=%d seed=%d", runID, opts.std, opts.mode, opts.seed)
	}

	const funcCount = 4
	const varsPerClass = 6
	prog := genstmt.GenerateProgram(ctx, funcCount, varsPerClass)

	if err := emitProgram(opts.outDir, prog); err != nil {
		fmt.Fprintln(os.Stderr, ierrors.NewConfigError(err.Error()))
		return -1
	}

	if !opts.quiet {
		log.Printf("generated %s expressions across %s statements in %d functions",
			humanize.Comma(int64(ctx.Shared.Budget.TotalExprCount)),
			humanize.Comma(int64(ctx.Shared.Budget.TotalStmtCount)),
			len(prog.Functions))
	}
	return 0
}

var errShowVersionOnly = fmt.Errorf("version")

// parseArgs implements the CLI surface: -q, -v/--version,
// -d/--out-dir, -s/--seed (SSS or VV_SSS form), -m/--bit-mode,
// --std. Unknown flags or values are ConfigErrors (exit -1). Parsing
// is an explicit argument loop rather than a flag-package DSL: the
// combined VV_SSS seed form and single-dash long options don't fit
// flag's model.
func parseArgs(args []string) (*options, error) {
	opts := &options{outDir: ".", mode: langstd.Bits64, std: langstd.CXX11}
	var seedSet bool

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-q":
			opts.quiet = true
		case a == "-v" || a == "--version":
			return nil, errShowVersionOnly
		case a == "-d" || a == "--out-dir":
			v, err := nextValue(args, &i, a)
			if err != nil {
				return nil, err
			}
			opts.outDir = v
		case strings.HasPrefix(a, "--out-dir="):
			opts.outDir = strings.TrimPrefix(a, "--out-dir=")
		case a == "-s" || a == "--seed":
			v, err := nextValue(args, &i, a)
			if err != nil {
				return nil, err
			}
			seed, err := parseSeed(v)
			if err != nil {
				return nil, err
			}
			opts.seed = seed
			seedSet = true
		case strings.HasPrefix(a, "--seed="):
			seed, err := parseSeed(strings.TrimPrefix(a, "--seed="))
			if err != nil {
				return nil, err
			}
			opts.seed = seed
			seedSet = true
		case a == "-m" || a == "--bit-mode":
			v, err := nextValue(args, &i, a)
			if err != nil {
				return nil, err
			}
			mode, err := parseBitMode(v)
			if err != nil {
				return nil, err
			}
			opts.mode = mode
		case strings.HasPrefix(a, "--bit-mode="):
			mode, err := parseBitMode(strings.TrimPrefix(a, "--bit-mode="))
			if err != nil {
				return nil, err
			}
			opts.mode = mode
		case strings.HasPrefix(a, "--std="):
			std, ok := langstd.Parse(strings.TrimPrefix(a, "--std="))
			if !ok {
				return nil, ierrors.NewConfigError(fmt.Sprintf("unknown --std value %q", a))
			}
			opts.std = std
		default:
			return nil, ierrors.NewConfigError(fmt.Sprintf("unrecognized option %q", a))
		}
	}

	if !seedSet {
		opts.seed = rand.Uint64()
	}
	if _, err := os.Stat(opts.outDir); err != nil {
		return nil, ierrors.NewConfigError(fmt.Sprintf("out-dir %q does not exist", opts.outDir))
	}
	return opts, nil
}

func nextValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", ierrors.NewConfigError(fmt.Sprintf("%s requires a value", flag))
	}
	*i++
	return args[*i], nil
}

func parseBitMode(v string) (langstd.BitMode, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ierrors.NewConfigError(fmt.Sprintf("invalid bit-mode %q", v))
	}
	mode, ok := langstd.ParseBitMode(n)
	if !ok {
		return 0, ierrors.NewConfigError(fmt.Sprintf("invalid bit-mode %q", v))
	}
	return mode, nil
}

// parseSeed accepts either a bare "SSS" seed or a version-tagged
// "VV_SSS" seed whose VV must equal the tool's own plain version
// (version "0.1" -> "01"). VV is checked by plain string equality;
// on a mismatch, releaseCompare (golang.org/x/mod/semver) only decides
// whether the error names the seed as coming from a newer oorgen.
func parseSeed(v string) (uint64, error) {
	if !strings.Contains(v, "_") {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, ierrors.NewConfigError(fmt.Sprintf("invalid seed %q", v))
		}
		return n, nil
	}
	parts := strings.SplitN(v, "_", 2)
	vv, ss := parts[0], parts[1]
	expected := strings.ReplaceAll(version, ".", "")
	if vv != expected {
		if releaseCompare(vv, expected) > 0 {
			return 0, ierrors.NewConfigError(fmt.Sprintf("seed %q was produced by a newer oorgen (tool is %q)", v, version))
		}
		return 0, ierrors.NewConfigError(fmt.Sprintf("seed version tag %q does not match tool version %q", vv, expected))
	}
	n, err := strconv.ParseUint(ss, 10, 64)
	if err != nil {
		return 0, ierrors.NewConfigError(fmt.Sprintf("invalid seed %q", v))
	}
	return n, nil
}
