package http1

type splitterState uint8

const (
	eScanningHeader splitterState = iota + 1
	eStreamingBody
)
