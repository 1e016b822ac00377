package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the gathered metrics of g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(g prom.Gatherer, path string) error {
	if path == "" {
		return nil
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
