package api

type Preset struct {
	Name   string            `json:"name"`
	Values map[string]string `json:"values"`
}
