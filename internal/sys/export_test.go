package sys

// SetOpeners swaps the browser and clipboard hooks, returning a restore func.
func SetOpeners(open, cp func(string) error) func() {
	prevOpen, prevCopy := openURL, writeClipboard
	openURL, writeClipboard = open, cp
	return func() { openURL, writeClipboard = prevOpen, prevCopy }
}
