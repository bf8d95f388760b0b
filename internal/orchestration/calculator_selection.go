package orchestration

import (
	"github.com/agbru/fibsci/internal/fibonacci"
)

// GetCalculatorsToRun determines which calculators should be executed based on
// the algorithm selection. The selection "all" returns every registered
// algorithm in alphabetically sorted order for consistent, reproducible
// behavior.
//
// Parameters:
//   - algo: The algorithm identifier, or "all".
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []fibonacci.Calculator: A slice of calculators to execute, nil when
//     the identifier is unknown.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == "all" {
		return factory.GetAll()
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}
