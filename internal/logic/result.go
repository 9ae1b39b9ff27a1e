package logic

// result is the outcome of processing a single file.
type result struct {
	input      string
	output     string
	outputSize int64
	err        error
}
