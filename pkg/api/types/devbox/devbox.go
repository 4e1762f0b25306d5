package devbox

// Release is the response of POST /api/releaseAndDeployDevbox
type Release struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	Deployment string `json:"deployment"`
	Service    string `json:"service,omitempty"`
}

// Upload is the response of POST /api/uploadAndExtractFile
type Upload struct {
	DevboxName  string `json:"devboxName"`
	Destination string `json:"destination"`
	Size        int64  `json:"size"`
}
