package instances

import "encoding/json"

// Detail is the response of GET /api/v1/instance/:name
type Detail struct {
	Name string `json:"name"`

	// the Instance custom resource, as returned from the API server. null if missing.
	Instance json.RawMessage `json:"instance"`

	// resources labelled with the instance, per kind. Kinds without resources are omitted.
	Resources []Resources `json:"resources"`
}

type Resources struct {
	Kind  string   `json:"kind"`
	Names []string `json:"names"`
}
