package authoring

// Config controls the Drafter.
type Config struct {
	// Validators run in order on every draft; the first failure skips it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// BatchSize is the largest number of items asked for in one request.
	BatchSize int

	// MaxParallel caps concurrent requests.
	MaxParallel int

	// MaxExisting limits how many existing prompts are listed in the
	// request to steer the model away from duplicates.
	MaxExisting int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
		BatchSize:   10,
		MaxParallel: 3,
		MaxExisting: 30,
	}
}
