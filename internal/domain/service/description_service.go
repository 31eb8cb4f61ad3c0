package service

import (
	"context"
)

type DescriptionRequest struct {
	Game     string
	Item     string
	Category string
	Features []string
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
