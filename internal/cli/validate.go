package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/stepwise/pkg/scenario"
	"github.com/aretw0/stepwise/pkg/schema"
)

// Validate checks every scenario of a file against its algorithm's schema
// without running anything.
func Validate(path string, out io.Writer) error {
	scenarios, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	invalid := 0
	for _, sc := range scenarios {
		err := scenario.Validate(sc)
		if err == nil {
			fmt.Fprintf(out, "ok    %s (%s)\n", sc.Name, sc.Algorithm)
			continue
		}

		invalid++
		fields := schema.ValidationErrors(unwrapScenario(err))
		if len(fields) == 0 {
			fmt.Fprintf(out, "FAIL  %s: %v\n", sc.Name, unwrapScenario(err))
			continue
		}
		fmt.Fprintf(out, "FAIL  %s (%s)\n", sc.Name, sc.Algorithm)
		for _, fe := range fields {
			fmt.Fprintf(out, "      - %v\n", fe)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d scenarios invalid", invalid, len(scenarios))
	}
	return nil
}

// unwrapScenario strips the `scenario "name": ` prefix added by pkg/scenario.
func unwrapScenario(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return err
}
