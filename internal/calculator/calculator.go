// Package calculator evaluates arithmetic over a fixed number of operands.
package calculator

import (
	"fmt"
	"math"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
)

// OperandCount is the number of operands Evaluate accepts.
const OperandCount = 3

type Operation string

const (
	OperationAdd      Operation = "add"
	OperationSubtract Operation = "subtract"
	OperationMultiply Operation = "multiply"
	OperationDivide   Operation = "divide"
	OperationPower    Operation = "power"
	OperationSqrt     Operation = "sqrt"
)

func (o Operation) Validate() error {
	switch o {
	case OperationAdd, OperationSubtract, OperationMultiply, OperationDivide, OperationPower, OperationSqrt:
		return nil
	default:
		return fmt.Errorf("unsupported operation: %q", string(o))
	}
}

// Evaluate applies op to operands left to right:
//
//	add       a + b + c
//	subtract  a - b - c
//	multiply  a * b * c
//	divide    a / b / c
//	power     (a ^ b) ^ c
//	sqrt      √a, the other operands are ignored
func Evaluate(op Operation, operands []float64) (float64, error) {
	if err := op.Validate(); err != nil {
		return 0, apperr.NewValidation("%s", err.Error())
	}
	if len(operands) != OperandCount {
		return 0, apperr.NewValidation("exactly %d operands are required, got %d", OperandCount, len(operands))
	}
	if err := checkOperands(operands...); err != nil {
		return 0, err
	}

	var result float64
	switch op {
	case OperationAdd:
		for _, n := range operands {
			result += n
		}
	case OperationSubtract:
		result = operands[0]
		for _, n := range operands[1:] {
			result -= n
		}
	case OperationMultiply:
		result = 1
		for _, n := range operands {
			result *= n
		}
	case OperationDivide:
		result = operands[0]
		for _, n := range operands[1:] {
			if n == 0 {
				return 0, apperr.DivisionByZeroErr
			}
			result /= n
		}
	case OperationPower:
		result = operands[0]
		for _, n := range operands[1:] {
			result = math.Pow(result, n)
		}
	case OperationSqrt:
		if operands[0] < 0 {
			return 0, apperr.InvalidArgumentErr
		}
		result = math.Sqrt(operands[0])
	}

	return checkResult(result)
}

// EvaluateBinary applies one of the four basic operations to a and b.
func EvaluateBinary(op Operation, a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}

	var result float64
	switch op {
	case OperationAdd:
		result = a + b
	case OperationSubtract:
		result = a - b
	case OperationMultiply:
		result = a * b
	case OperationDivide:
		if b == 0 {
			return 0, apperr.DivisionByZeroErr
		}
		result = a / b
	default:
		return 0, apperr.NewValidation("unsupported binary operation: %q", string(op))
	}

	return checkResult(result)
}

func checkOperands(operands ...float64) error {
	for i, n := range operands {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return apperr.NewValidation("operand %d must be a finite number", i+1)
		}
	}
	return nil
}

func checkResult(result float64) (float64, error) {
	switch {
	case math.IsNaN(result):
		// e.g. a negative base raised to a fractional power
		return 0, apperr.InvalidArgumentErr.WithMsg("Result is not a real number")
	case math.IsInf(result, 0):
		return 0, apperr.NumericOverflowErr
	default:
		return result, nil
	}
}
