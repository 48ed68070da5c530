package runner

import (
	"fmt"
	"os"

	"pyvm/pkg/color"
	"pyvm/pkg/interpreter"
	"pyvm/pkg/loader"

	"github.com/charmbracelet/log"
)

// Runner drives one program through load, optional disassembly and
// execution.
type Runner struct {
	Help        bool   // Show help message
	Verbose     bool   // Enable verbose output
	Disassemble bool   // Print the disassembly and exit without running
	NoColor     bool   // Disable colored output
	MaxSteps    int    // Step limit for the interpreter (0 = unlimited)
	ProgramFile string // Path to the serialized program
}

// Run loads the program file, reports any load-time error before a
// single instruction executes, then runs the interpreter to completion.
func (opts *Runner) Run() error {
	log.Info("Processing file", "file", opts.ProgramFile)

	input, err := os.ReadFile(opts.ProgramFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", opts.ProgramFile, "error", err)
	}

	code, err := loader.Load(input)
	if err != nil {
		fmt.Println(color.BrightRedText("=== Load Error ==="))
		fmt.Println(err)
		return fmt.Errorf("loading failed: %w", err)
	}

	if opts.Verbose || opts.Disassemble {
		fmt.Println(color.GreenText("\n=== Disassembly ==="))
		dumpCode(code, "<module>")
	}

	if opts.Disassemble {
		return nil
	}

	it := interpreter.New(code,
		interpreter.WithWriter(os.Stdout),
		interpreter.WithMaxSteps(opts.MaxSteps))

	if opts.Verbose {
		fmt.Println(color.GreenText("\n=== Program Output ==="))
	}

	if err := it.Run(); err != nil {
		fmt.Println(color.Error(err.Error()))
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}

// dumpCode prints one code object's instruction listing, then recurses
// into its function constants.
func dumpCode(code *interpreter.Code, label string) {
	fmt.Printf("%s:\n", color.YellowText(label))

	for i := 0; i < code.NumInstr(); i++ {
		in := code.Instr(i)
		note := ""

		if class, ok := in.Op.ClassOf(); ok {
			switch class {
			case interpreter.OperandConst:
				note = fmt.Sprintf("(%s)", code.Const(in.Arg))
			case interpreter.OperandName:
				note = fmt.Sprintf("(%s)", code.Name(in.Arg))
			case interpreter.OperandCompare:
				note = fmt.Sprintf("(%s)", interpreter.CompareSelector(in.Arg))
			}
		}

		fmt.Printf("%s: %s %s\n",
			color.CyanText(fmt.Sprintf("%4d", i)),
			color.BlueText(in.String()),
			color.GrayText(note))
	}

	for i := 0; i < code.NumConsts(); i++ {
		if c := code.Const(i); c.Kind == interpreter.KindFunc {
			fmt.Println()
			dumpCode(c.Fn.Code, fmt.Sprintf("%s.constants[%d]", label, i))
		}
	}
}
