// Package billing provides the value types and pure generators for every
// canned response body the mock serves: usage exports (EVN), invoices,
// product catalogs, traffic, and utilization reports.
package billing

// Money pairs a quantity with its unit.
type Money struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ReportMetadata heads usage, traffic and utilization bodies. ContractID
// is numeric on the wire even though it arrives as a path string.
type ReportMetadata struct {
	CustomerID int64  `json:"customerId"`
	ContractID int64  `json:"contractId"`
	Period     string `json:"period"`
}

// UsageRecord is one metered resource inside a usage export.
type UsageRecord struct {
	ResourceType         string `json:"resourceType"`
	ResourceUUID         string `json:"resourceUUID"`
	IntervalMin          int64  `json:"intervalMin"`
	IntervalDivisor      int64  `json:"intervalDivisor"`
	From                 string `json:"from"`
	To                   string `json:"to"`
	ItemStub             string `json:"itemStub"`
	Value                int64  `json:"value"`
	ValueDivisor         int64  `json:"valueDivisor"`
	AdditionalParameters string `json:"additionalParameters"`
}

// UsageDatacenter groups usage records under one virtual datacenter.
type UsageDatacenter struct {
	VDCUUID string        `json:"vdcUUID"`
	Name    string        `json:"name"`
	Data    []UsageRecord `json:"data"`
}

// UsageExport is the EVN response body.
type UsageExport struct {
	Metadata    ReportMetadata    `json:"metadata"`
	Datacenters []UsageDatacenter `json:"datacenters"`
	EVNCSV      []string          `json:"evnCSV"`
}

// InvoiceMetadata heads an invoice body.
type InvoiceMetadata struct {
	InvoiceID     string `json:"invoiceId"`
	ContractID    int64  `json:"contractId"`
	CustomerID    int64  `json:"customerId"`
	CreatedDate   string `json:"createdDate"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PostingPeriod string `json:"postingPeriod"`
	FinallyPosted bool   `json:"finallyPosted"`
	Reference     string `json:"reference"`
	ResellerRef   string `json:"resellerRef"`
}

// InvoiceMeter is one billed meter position.
type InvoiceMeter struct {
	MeterID      string `json:"meterId"`
	MeterDesc    string `json:"meterDesc"`
	ProductGroup string `json:"productGroup"`
	Quantity     Money  `json:"quantity"`
	Rate         Money  `json:"rate"`
	Amount       Money  `json:"amount"`
}

// Rebate is a discount position on an invoice datacenter.
type Rebate struct {
	Amount Money `json:"amount"`
}

// InvoiceDatacenter groups billed meters under one datacenter.
type InvoiceDatacenter struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	ProductGroup string         `json:"productGroup"`
	Meters       []InvoiceMeter `json:"meters"`
	Rebate       Rebate         `json:"rebate"`
}

// Invoice is a single invoice body; invoice lists carry the same shape
// without datacenter detail.
type Invoice struct {
	Metadata    InvoiceMetadata     `json:"metadata"`
	Datacenters []InvoiceDatacenter `json:"datacenters"`
	Total       Money               `json:"total"`
}

// CatalogMetadata heads a product catalog body.
type CatalogMetadata struct {
	ContractID int64  `json:"contractId"`
	CustomerID int64  `json:"customerId"`
	Reference  string `json:"reference"`
}

// Product is one purchasable meter.
type Product struct {
	MeterID   string `json:"meterId"`
	MeterDesc string `json:"meterDesc"`
	Unit      string `json:"unit"`
	UnitCost  Money  `json:"unitCost"`
}

// ProductCatalog is the products response body.
type ProductCatalog struct {
	Metadata  CatalogMetadata `json:"metadata"`
	Liability string          `json:"liability"`
	Products  []Product       `json:"products"`
}

// TrafficRecord is one NIC traffic measurement.
type TrafficRecord struct {
	ResourceType string `json:"resourceType"`
	ResourceUUID string `json:"resourceUUID"`
	From         string `json:"from"`
	To           string `json:"to"`
	ItemStub     string `json:"itemStub"`
	Value        int64  `json:"value"`
	ValueDivisor int64  `json:"valueDivisor"`
}

// TrafficDatacenter groups traffic records under one virtual datacenter.
type TrafficDatacenter struct {
	VDCUUID string          `json:"vdcUUID"`
	Name    string          `json:"name"`
	Data    []TrafficRecord `json:"data"`
}

// TrafficReport is the traffic response body.
type TrafficReport struct {
	Metadata    ReportMetadata      `json:"metadata"`
	Datacenters []TrafficDatacenter `json:"datacenters"`
}

// UtilizationRecord carries a utilization percentage instead of a
// value/divisor pair.
type UtilizationRecord struct {
	ResourceType string  `json:"resourceType"`
	ResourceUUID string  `json:"resourceUUID"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	Utilization  float64 `json:"utilization"`
}

// UtilizationDatacenter groups utilization records under one VDC.
type UtilizationDatacenter struct {
	VDCUUID string              `json:"vdcUUID"`
	Name    string              `json:"name"`
	Data    []UtilizationRecord `json:"data"`
}

// UtilizationReport is the utilization response body.
type UtilizationReport struct {
	Metadata    ReportMetadata          `json:"metadata"`
	Datacenters []UtilizationDatacenter `json:"datacenters"`
}
