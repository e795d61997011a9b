package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/chicken-vending/internal/calculator"
)

type calculateRequest struct {
	Operation calculator.Operation `json:"operation" validate:"required,enum"`
	Operands  []float64            `json:"operands" validate:"required,len=3"`
}

type calculateResponse struct {
	Operation calculator.Operation `json:"operation"`
	Operands  []float64            `json:"operands"`
	Result    float64              `json:"result"`
}

type resultResponse struct {
	Result float64 `json:"result"`
}

func (s *Service) Calculate(w http.ResponseWriter, r *http.Request) error {
	var req calculateRequest
	if err := s.decodeBody(r, &req); err != nil {
		return err
	}

	result, err := calculator.Evaluate(req.Operation, req.Operands)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", req.Operation, err)
	}

	return s.writeJSON(w, r, http.StatusOK, calculateResponse{
		Operation: req.Operation,
		Operands:  req.Operands,
		Result:    result,
	})
}

func (s *Service) binaryOperation(op calculator.Operation) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var a, b float64
		if err := bindQueryParam(r, "a", true, &a); err != nil {
			return err
		}
		if err := bindQueryParam(r, "b", true, &b); err != nil {
			return err
		}

		result, err := calculator.EvaluateBinary(op, a, b)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", op, err)
		}

		return s.writeJSON(w, r, http.StatusOK, resultResponse{Result: result})
	}
}
