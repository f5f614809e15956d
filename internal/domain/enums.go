package domain

// Route identifies the downstream handling queue a claim is assigned to.
type Route string

const (
	RouteInvestigation Route = "Investigation Flag"
	RouteManualReview  Route = "Manual Review"
	RouteSpecialist    Route = "Specialist Queue"
	RouteFastTrack     Route = "Fast-track"
)

// BinaryExtensions maps file extensions (without dot) of binary document
// formats the extractor cannot read. Such files must be converted to text
// upstream before triage.
var BinaryExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"tif":  true,
	"tiff": true,
}
