package domain

// CommonOptions contains shared run options for stages and orchestration.
type CommonOptions struct {
	Verbose bool
	Limit   int
	Clean   bool
}
