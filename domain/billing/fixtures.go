package billing

// Fixtures holds the canned values every generated response is built
// from. They are process-wide constants loaded once from configuration,
// not persisted state.
type Fixtures struct {
	CustomerID        int64  `yaml:"customer_id"`
	ContractID        int64  `yaml:"contract_id"`
	InvalidContractID string `yaml:"invalid_contract_id"` // sentinel selecting the 404 path
	VDCUUID           string `yaml:"vdc_uuid"`
	VDCName           string `yaml:"vdc_name"`
	ResourceUUID      string `yaml:"resource_uuid"`
	DatacenterID      string `yaml:"datacenter_id"`
	Period            string `yaml:"period"`

	// Invoice defaults
	InvoiceID            string  `yaml:"invoice_id"`
	InvoiceAmount        float64 `yaml:"invoice_amount"`
	InvoiceCreatedDate   string  `yaml:"invoice_created_date"`
	InvoiceStartDate     string  `yaml:"invoice_start_date"`
	InvoiceEndDate       string  `yaml:"invoice_end_date"`
	InvoicePostingPeriod string  `yaml:"invoice_posting_period"`
	InvoiceReference     string  `yaml:"invoice_reference"`
	InvoiceResellerRef   string  `yaml:"invoice_reseller_ref"`

	// Product defaults
	UnitCost         float64 `yaml:"unit_cost"`
	ProductMeterID   string  `yaml:"product_meter_id"`
	ProductMeterDesc string  `yaml:"product_meter_desc"`
	ProductUnit      string  `yaml:"product_unit"`
	ProductLiability string  `yaml:"product_liability"`

	// Usage export (EVN) defaults
	ItemStub             string `yaml:"item_stub"`
	Value                int64  `yaml:"value"`
	ValueDivisor         int64  `yaml:"value_divisor"`
	AdditionalParameters string `yaml:"additional_parameters"`
	IntervalMin          int64  `yaml:"interval_min"`
	IntervalDivisor      int64  `yaml:"interval_divisor"`

	// Traffic defaults
	TrafficValue    int64  `yaml:"traffic_value"`
	TrafficItemStub string `yaml:"traffic_item_stub"`

	// Utilization defaults
	Utilization float64 `yaml:"utilization"`

	// Invoice datacenter defaults
	Location     string `yaml:"location"`
	ProductGroup string `yaml:"product_group"`
	MeterID      string `yaml:"meter_id"`
	MeterDesc    string `yaml:"meter_desc"`
	Quantity     int64  `yaml:"quantity"`
	QuantityUnit string `yaml:"quantity_unit"`
	Currency     string `yaml:"currency"`
}

// DefaultFixtures returns the stock dataset the mock ships with.
func DefaultFixtures() Fixtures {
	return Fixtures{
		CustomerID:        112505406,
		ContractID:        441759,
		InvalidContractID: "999999",
		VDCUUID:           "f2c2edf6-49f7-4687-8100-872b4d02ddcc",
		VDCName:           "Main VDC",
		ResourceUUID:      "504b4dff-56e3-49cd-89b1-dbed716c6265",
		DatacenterID:      "54eb1ed9-06f5-4bfb-a4f0-07cc373f5ee1",
		Period:            "2020-01",

		InvoiceID:            "GY00012345",
		InvoiceAmount:        2.94,
		InvoiceCreatedDate:   "2020-02-05T04:00:00",
		InvoiceStartDate:     "2020-01-01",
		InvoiceEndDate:       "2020-01-31",
		InvoicePostingPeriod: "2020-01",
		InvoiceReference:     "123456|111",
		InvoiceResellerRef:   "bricksonline",

		UnitCost:         0.02,
		ProductMeterID:   "C01000",
		ProductMeterDesc: "1h core AMD",
		ProductUnit:      "1hour",
		ProductLiability: "Please double check your contract for prices.",

		ItemStub:             "C01000",
		Value:                2,
		ValueDivisor:         1,
		AdditionalParameters: "AMD_OPTERON",
		IntervalMin:          44640,
		IntervalDivisor:      60,

		TrafficValue:    1000000,
		TrafficItemStub: "TRAFFIC",

		Utilization: 85.5,

		Location:     "EU",
		ProductGroup: "PG 1",
		MeterID:      "C010EU",
		MeterDesc:    "1h core AMD - EU",
		Quantity:     12960,
		QuantityUnit: "1hour",
		Currency:     "EUR",
	}
}
