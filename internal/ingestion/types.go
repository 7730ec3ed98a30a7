// Package ingestion reads the tab-separated document and query files of a
// batch run into typed records.
package ingestion

// QueryRecord is one line of the queries file: "<id>\t<query>".
type QueryRecord struct {
	ID   int
	Text string
	Line int
}
