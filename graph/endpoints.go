package graph

// Endpoint describes one named tool-provider endpoint.
type Endpoint struct {
	Name      string
	URL       string
	Transport string // "sse"
}

// filterEndpoints drops descriptors without a URL so a missing integration
// never reaches a connection attempt. Which integrations are active is
// decidable from configuration alone.
func filterEndpoints(endpoints []Endpoint) []Endpoint {
	kept := make([]Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if ep.URL == "" {
			continue
		}
		kept = append(kept, ep)
	}
	return kept
}
