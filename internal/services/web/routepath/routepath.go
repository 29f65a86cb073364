// Package routepath stores canonical HTTP paths for web modules.
package routepath

const (
	Root           = "/"
	Health         = "/up"
	StaticPrefix   = "/static/"
	PredictPrefix  = "/predict/"
	PredictFields  = "/predict/fields"
	PredictSubmit  = "/predict/submit"
	PredictState   = "/predict/state"
	PredictReset   = "/predict/reset"
	SubmissionsAPI = "/api/submissions"
)

// Static returns the public URL of an embedded static asset.
func Static(name string) string {
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return StaticPrefix + name
}
