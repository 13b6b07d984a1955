package main

import (
	"fmt"

	"github.com/google/uuid"
)

func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, a := range args {
		id, err := uuid.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid asset id %q: %w", a, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
