// Command sm83regs builds an SM83 register file, applies register
// writes to it and prints the result. Register files can be loaded
// from, and saved to, state files.
//
//	sm83regs -model dmg -bc 0x1234 -f 0xA0 -save regs.state
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, builds the register file and prints it to stdout.
// Log output goes to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sm83regs", flag.ContinueOnError)
	fs.SetOutput(stderr)

	asModel := fs.String("model", "", "Load the post-boot registers of a model, e.g. dmg or cgb")
	loadFile := fs.String("load", "", "The state file to load registers from")
	saveFile := fs.String("save", "", "The state file to save registers to")
	flags := fs.String("f", "", "The value to write to the F register")
	debug := fs.Bool("debug", false, "Enable debug logging")
	pairs := make(map[cpu.PairName]*string)
	for _, p := range []cpu.PairName{cpu.PairAF, cpu.PairBC, cpu.PairDE, cpu.PairHL} {
		pairs[p] = fs.String(strings.ToLower(p.String()), "", "The value to write to the "+p.String()+" register pair")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := log.NewWithOutput(stderr, *debug)

	regs, err := newRegisters(*asModel, *loadFile, logger)
	if err != nil {
		return err
	}

	// pairs are applied before F, so that -f overrides the flags of -af
	for _, p := range []cpu.PairName{cpu.PairAF, cpu.PairBC, cpu.PairDE, cpu.PairHL} {
		if *pairs[p] == "" {
			continue
		}
		v, err := parseValue(*pairs[p], 16)
		if err != nil {
			return errors.Wrapf(err, "invalid value for -%s", strings.ToLower(p.String()))
		}
		regs.SetPair(p, uint16(v))
		logger.Debugf("%s <- %04X", p, v)
	}
	if *flags != "" {
		v, err := parseValue(*flags, 8)
		if err != nil {
			return errors.Wrap(err, "invalid value for -f")
		}
		regs.SetRegister(cpu.NameF, uint8(v))
		logger.Debugf("F <- %02X (%s)", v, regs.F)
	}

	printRegisters(stdout, regs)

	if *saveFile != "" {
		s := types.NewState()
		regs.Save(s)
		if err := s.SaveToFile(*saveFile); err != nil {
			return err
		}
		logger.Infof("saved registers to %s (checksum %016x)", *saveFile, s.Checksum())
	}

	return nil
}

// newRegisters creates the initial register file, either from a
// state file or from the post-boot values of a model.
func newRegisters(model, loadFile string, logger log.Logger) (*cpu.Registers, error) {
	if loadFile != "" {
		if model != "" {
			return nil, errors.New("-model and -load are mutually exclusive")
		}
		s, err := types.StateFromFile(loadFile)
		if err != nil {
			return nil, err
		}
		regs := cpu.NewRegisters()
		if err := regs.Load(s); err != nil {
			return nil, errors.Wrapf(err, "loading %s", loadFile)
		}
		logger.Infof("loaded registers from %s", loadFile)
		return regs, nil
	}

	if model == "" {
		return cpu.NewRegisters(), nil
	}
	m := types.StringToModel(model)
	if m == types.Unset && !strings.EqualFold(model, types.Unset.String()) {
		return nil, errors.Errorf("unknown model %q", model)
	}
	logger.Debugf("using %s registers", m)
	return cpu.NewRegisters(cpu.WithModel(m)), nil
}

func parseValue(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, 0, bitSize)
}

func printRegisters(w io.Writer, regs *cpu.Registers) {
	fmt.Fprintln(w, regs)
	for i, n := range []cpu.Name{cpu.NameA, cpu.NameF, cpu.NameB, cpu.NameC, cpu.NameD, cpu.NameE, cpu.NameH, cpu.NameL} {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%s=%02X", n, regs.Register(n))
	}
	fmt.Fprintln(w)
}
