package correlator

// Warning is a recoverable problem encountered during a scan.
type Warning struct {
	Key     string // entity the warning is about, usually an ARN
	Message string
}

// Report accumulates scan-progress counters and warnings.
// One report belongs to one scan; it is updated after every record.
type Report struct {
	EndpointsScanned int
	ModelsScanned    int
	GroupsScanned    int
	RecordsEmitted   int
	Warnings         []Warning
}

// NewReport returns an empty scan report.
func NewReport() *Report {
	return &Report{}
}

// ReportWarning records a recoverable warning; the scan continues.
func (r *Report) ReportWarning(key, message string) {
	r.Warnings = append(r.Warnings, Warning{Key: key, Message: message})
}

func (r *Report) reportEndpointScanned() { r.EndpointsScanned++ }
func (r *Report) reportModelScanned()    { r.ModelsScanned++ }
func (r *Report) reportGroupScanned()    { r.GroupsScanned++ }
func (r *Report) reportRecord()          { r.RecordsEmitted++ }
