package billing_test

import (
	"strings"
	"testing"

	"github.com/artpar/billmock/domain/billing"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func newGenerator() *billing.Generator {
	return billing.NewGenerator(billing.DefaultFixtures())
}

func TestUsage_FullMonthSpan(t *testing.T) {
	g := newGenerator()

	resp := g.Usage(billing.UsageParams{ContractID: "441759", Period: "2020-01"})

	if resp.Metadata.ContractID != 441759 {
		t.Errorf("contractId = %d, want 441759", resp.Metadata.ContractID)
	}
	if resp.Metadata.Period != "2020-01" {
		t.Errorf("period = %q, want 2020-01", resp.Metadata.Period)
	}
	if len(resp.Datacenters) != 1 {
		t.Fatalf("datacenters = %d, want 1", len(resp.Datacenters))
	}

	rec := resp.Datacenters[0].Data[0]
	if rec.From != "2020-01-01T00:00:00.000Z" {
		t.Errorf("from = %q", rec.From)
	}
	if rec.To != "2020-01-31T23:59:59.999Z" {
		t.Errorf("to = %q", rec.To)
	}
	if rec.ResourceType != "SERVER" {
		t.Errorf("resourceType = %q, want SERVER", rec.ResourceType)
	}
}

func TestUsage_LeapFebruary(t *testing.T) {
	g := newGenerator()

	resp := g.Usage(billing.UsageParams{Period: "2020-02"})
	if to := resp.Datacenters[0].Data[0].To; to != "2020-02-29T23:59:59.999Z" {
		t.Errorf("to = %q, want 2020-02-29T23:59:59.999Z", to)
	}

	resp = g.Usage(billing.UsageParams{Period: "2021-02"})
	if to := resp.Datacenters[0].Data[0].To; to != "2021-02-28T23:59:59.999Z" {
		t.Errorf("to = %q, want 2021-02-28T23:59:59.999Z", to)
	}
}

func TestUsage_CSVHasHeaderAndOneRow(t *testing.T) {
	g := newGenerator()

	resp := g.Usage(billing.UsageParams{ContractID: "441759", Period: "2020-01"})
	if len(resp.EVNCSV) != 2 {
		t.Fatalf("evnCSV = %d lines, want 2", len(resp.EVNCSV))
	}
	if !strings.HasPrefix(resp.EVNCSV[0], "contractId,VDCUUID,") {
		t.Errorf("header = %q", resp.EVNCSV[0])
	}

	fields := strings.Split(resp.EVNCSV[1], ",")
	if len(fields) != 13 {
		t.Fatalf("data row has %d fields, want 13", len(fields))
	}
	if fields[0] != "441759" {
		t.Errorf("contract field = %q, want 441759", fields[0])
	}
	if fields[7] != "2020-01-01T00:00:00.000Z" {
		t.Errorf("from field = %q", fields[7])
	}
	if fields[12] != "AMD_OPTERON" {
		t.Errorf("additional parameters field = %q", fields[12])
	}
}

func TestUsage_ExcludesCSVAndData(t *testing.T) {
	g := newGenerator()

	resp := g.Usage(billing.UsageParams{
		Period:     "2020-01",
		IncludeCSV: boolPtr(false),
	})
	if len(resp.EVNCSV) != 0 {
		t.Errorf("evnCSV = %d lines, want 0", len(resp.EVNCSV))
	}
	if len(resp.Datacenters) != 1 {
		t.Errorf("datacenters = %d, want 1 (data flag untouched)", len(resp.Datacenters))
	}

	resp = g.Usage(billing.UsageParams{
		Period:      "2020-01",
		IncludeData: boolPtr(false),
	})
	if len(resp.Datacenters) != 0 {
		t.Errorf("datacenters = %d, want 0", len(resp.Datacenters))
	}
	if resp.Datacenters == nil {
		t.Error("datacenters must be an empty list, not nil")
	}
}

func TestUsage_DefaultsFromFixtures(t *testing.T) {
	g := newGenerator()

	resp := g.Usage(billing.UsageParams{})
	if resp.Metadata.ContractID != 441759 {
		t.Errorf("contractId = %d, want fixture default 441759", resp.Metadata.ContractID)
	}
	if resp.Metadata.CustomerID != 112505406 {
		t.Errorf("customerId = %d, want 112505406", resp.Metadata.CustomerID)
	}
	if resp.Metadata.Period != "2020-01" {
		t.Errorf("period = %q, want fixture default 2020-01", resp.Metadata.Period)
	}
}

func TestInvoice_Defaults(t *testing.T) {
	g := newGenerator()

	inv := g.Invoice(billing.InvoiceParams{ContractID: "441759"})

	md := inv.Metadata
	if md.InvoiceID != "GY00012345" {
		t.Errorf("invoiceId = %q", md.InvoiceID)
	}
	if md.ContractID != 441759 {
		t.Errorf("contractId = %d", md.ContractID)
	}
	if !md.FinallyPosted {
		t.Error("finallyPosted should be true")
	}
	if md.ResellerRef != "bricksonline" {
		t.Errorf("resellerRef = %q", md.ResellerRef)
	}
	if inv.Total.Quantity != 2.94 || inv.Total.Unit != "EUR" {
		t.Errorf("total = %+v", inv.Total)
	}

	if len(inv.Datacenters) != 1 {
		t.Fatalf("datacenters = %d, want 1", len(inv.Datacenters))
	}
	dc := inv.Datacenters[0]
	if len(dc.Meters) != 1 {
		t.Fatalf("meters = %d, want 1", len(dc.Meters))
	}
	m := dc.Meters[0]
	if m.Rate.Quantity != 2.94 || m.Amount.Quantity != 2.94 {
		t.Errorf("rate = %v amount = %v, want both 2.94", m.Rate.Quantity, m.Amount.Quantity)
	}
	if dc.Rebate.Amount.Quantity != 0 {
		t.Errorf("rebate = %v, want 0", dc.Rebate.Amount.Quantity)
	}
}

func TestInvoice_AmountOverrideDrivesRateAndTotal(t *testing.T) {
	g := newGenerator()

	inv := g.Invoice(billing.InvoiceParams{
		InvoiceID: "INV123",
		Amount:    floatPtr(100.5),
	})
	if inv.Metadata.InvoiceID != "INV123" {
		t.Errorf("invoiceId = %q", inv.Metadata.InvoiceID)
	}
	if inv.Total.Quantity != 100.5 {
		t.Errorf("total = %v, want 100.5", inv.Total.Quantity)
	}
	if m := inv.Datacenters[0].Meters[0]; m.Rate.Quantity != 100.5 || m.Amount.Quantity != 100.5 {
		t.Errorf("meter rate/amount = %v/%v, want 100.5", m.Rate.Quantity, m.Amount.Quantity)
	}
}

func TestInvoice_ListVariantOmitsDatacenters(t *testing.T) {
	g := newGenerator()

	inv := g.Invoice(billing.InvoiceParams{
		ContractID:         "441759",
		IncludeDatacenters: boolPtr(false),
	})
	if len(inv.Datacenters) != 0 {
		t.Errorf("datacenters = %d, want 0", len(inv.Datacenters))
	}
	if inv.Datacenters == nil {
		t.Error("datacenters must be an empty list, not nil")
	}
}

func TestCatalog(t *testing.T) {
	g := newGenerator()

	cat := g.Catalog(billing.CatalogParams{ContractID: "441759"})
	if cat.Metadata.ContractID != 441759 {
		t.Errorf("contractId = %d", cat.Metadata.ContractID)
	}
	if cat.Metadata.Reference != "441759" {
		t.Errorf("reference = %q, want string form of contract id", cat.Metadata.Reference)
	}
	if cat.Liability != "Please double check your contract for prices." {
		t.Errorf("liability = %q", cat.Liability)
	}
	if len(cat.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(cat.Products))
	}
	p := cat.Products[0]
	if p.MeterID != "C01000" || p.Unit != "1hour" {
		t.Errorf("product = %+v", p)
	}
	if p.UnitCost.Quantity != 0.02 || p.UnitCost.Unit != "EUR" {
		t.Errorf("unitCost = %+v", p.UnitCost)
	}
}

func TestTraffic(t *testing.T) {
	g := newGenerator()

	tr := g.Traffic(billing.TrafficParams{ContractID: "441759", Period: "2020-04"})
	if len(tr.Datacenters) != 1 {
		t.Fatalf("datacenters = %d, want 1", len(tr.Datacenters))
	}
	rec := tr.Datacenters[0].Data[0]
	if rec.ResourceType != "NIC" {
		t.Errorf("resourceType = %q, want NIC", rec.ResourceType)
	}
	if rec.ItemStub != "TRAFFIC" || rec.Value != 1000000 {
		t.Errorf("record = %+v", rec)
	}
	if rec.To != "2020-04-30T23:59:59.999Z" {
		t.Errorf("to = %q", rec.To)
	}

	empty := g.Traffic(billing.TrafficParams{Period: "2020-04", IncludeData: boolPtr(false)})
	if len(empty.Datacenters) != 0 {
		t.Errorf("datacenters = %d, want 0", len(empty.Datacenters))
	}
}

func TestUtilization(t *testing.T) {
	g := newGenerator()

	u := g.Utilization(billing.UtilizationParams{ContractID: "441759", Period: "2020-01"})
	if len(u.Datacenters) != 1 {
		t.Fatalf("datacenters = %d, want 1", len(u.Datacenters))
	}
	rec := u.Datacenters[0].Data[0]
	if rec.ResourceType != "SERVER" {
		t.Errorf("resourceType = %q, want SERVER", rec.ResourceType)
	}
	if rec.Utilization != 85.5 {
		t.Errorf("utilization = %v, want 85.5", rec.Utilization)
	}
}

func TestContractID_NonNumericFallsBackToFixture(t *testing.T) {
	g := newGenerator()

	// The pipeline validates contract format before generation; the
	// generator still degrades sanely on its own.
	resp := g.Usage(billing.UsageParams{ContractID: "not-a-number", Period: "2020-01"})
	if resp.Metadata.ContractID != 441759 {
		t.Errorf("contractId = %d, want fixture default", resp.Metadata.ContractID)
	}
}

func TestMonthSpan(t *testing.T) {
	from, to := billing.MonthSpan("2020-02")
	if from != "2020-02-01T00:00:00.000Z" {
		t.Errorf("from = %q", from)
	}
	if to != "2020-02-29T23:59:59.999Z" {
		t.Errorf("to = %q", to)
	}
}
