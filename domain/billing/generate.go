package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/artpar/billmock/domain/validate"
)

// evnCSVHeader is the first line of every non-empty EVN CSV export.
const evnCSVHeader = "contractId,VDCUUID,VDCName,ResourceType,ResourceUUID," +
	"IntervalMin,IntervalDivisor,From,To,ItemStub,Value,ValueDivisor,Additional Parameters"

// Generator builds deterministic response bodies from fixtures plus
// caller overrides. All methods are pure.
type Generator struct {
	fx Fixtures
}

// NewGenerator creates a generator over the given fixture set.
func NewGenerator(fx Fixtures) *Generator {
	return &Generator{fx: fx}
}

// Fixtures returns the fixture set the generator was built with.
func (g *Generator) Fixtures() Fixtures {
	return g.fx
}

// UsageParams selects overrides for a usage export. Unset fields fall
// back to fixture defaults; nil flags default to true.
type UsageParams struct {
	ContractID  string
	Period      string
	IncludeData *bool
	IncludeCSV  *bool
}

// InvoiceParams selects overrides for an invoice body.
type InvoiceParams struct {
	InvoiceID          string
	ContractID         string
	Amount             *float64
	IncludeDatacenters *bool
}

// CatalogParams selects overrides for a product catalog.
type CatalogParams struct {
	ContractID string
	UnitCost   *float64
}

// TrafficParams selects overrides for a traffic report.
type TrafficParams struct {
	ContractID  string
	Period      string
	IncludeData *bool
}

// UtilizationParams selects overrides for a utilization report.
type UtilizationParams struct {
	ContractID  string
	Period      string
	IncludeData *bool
}

// MonthSpan returns the inclusive ISO bounds of the period's calendar
// month, from midnight on the first to the last millisecond of the last
// day.
func MonthSpan(period string) (from, to string) {
	lastDay := validate.LastDayOfMonth(period)
	from = fmt.Sprintf("%s-01T00:00:00.000Z", period)
	to = fmt.Sprintf("%s-%02dT23:59:59.999Z", period, lastDay)
	return from, to
}

// Usage builds an EVN usage export for one contract and period.
func (g *Generator) Usage(p UsageParams) UsageExport {
	contract := g.contractID(p.ContractID)
	period := g.period(p.Period)

	resp := UsageExport{
		Metadata: ReportMetadata{
			CustomerID: g.fx.CustomerID,
			ContractID: contract,
			Period:     period,
		},
		Datacenters: []UsageDatacenter{},
		EVNCSV:      []string{},
	}

	if orTrue(p.IncludeData) {
		from, to := MonthSpan(period)
		resp.Datacenters = append(resp.Datacenters, UsageDatacenter{
			VDCUUID: g.fx.VDCUUID,
			Name:    g.fx.VDCName,
			Data: []UsageRecord{{
				ResourceType:         "SERVER",
				ResourceUUID:         g.fx.ResourceUUID,
				IntervalMin:          g.fx.IntervalMin,
				IntervalDivisor:      g.fx.IntervalDivisor,
				From:                 from,
				To:                   to,
				ItemStub:             g.fx.ItemStub,
				Value:                g.fx.Value,
				ValueDivisor:         g.fx.ValueDivisor,
				AdditionalParameters: g.fx.AdditionalParameters,
			}},
		})
	}

	if orTrue(p.IncludeCSV) {
		from, to := MonthSpan(period)
		row := strings.Join([]string{
			strconv.FormatInt(contract, 10),
			g.fx.VDCUUID,
			g.fx.VDCName,
			"SERVER",
			g.fx.ResourceUUID,
			strconv.FormatInt(g.fx.IntervalMin, 10),
			strconv.FormatInt(g.fx.IntervalDivisor, 10),
			from,
			to,
			g.fx.ItemStub,
			strconv.FormatInt(g.fx.Value, 10),
			strconv.FormatInt(g.fx.ValueDivisor, 10),
			g.fx.AdditionalParameters,
		}, ",")
		resp.EVNCSV = []string{evnCSVHeader, row}
	}

	return resp
}

// Invoice builds a single invoice body. List lookups pass
// IncludeDatacenters=false and get the same shape without positions.
func (g *Generator) Invoice(p InvoiceParams) Invoice {
	invoiceID := p.InvoiceID
	if invoiceID == "" {
		invoiceID = g.fx.InvoiceID
	}
	amount := g.fx.InvoiceAmount
	if p.Amount != nil {
		amount = *p.Amount
	}

	resp := Invoice{
		Metadata: InvoiceMetadata{
			InvoiceID:     invoiceID,
			ContractID:    g.contractID(p.ContractID),
			CustomerID:    g.fx.CustomerID,
			CreatedDate:   g.fx.InvoiceCreatedDate,
			StartDate:     g.fx.InvoiceStartDate,
			EndDate:       g.fx.InvoiceEndDate,
			PostingPeriod: g.fx.InvoicePostingPeriod,
			FinallyPosted: true,
			Reference:     g.fx.InvoiceReference,
			ResellerRef:   g.fx.InvoiceResellerRef,
		},
		Datacenters: []InvoiceDatacenter{},
		Total: Money{
			Quantity: amount,
			Unit:     g.fx.Currency,
		},
	}

	if orTrue(p.IncludeDatacenters) {
		resp.Datacenters = append(resp.Datacenters, InvoiceDatacenter{
			ID:           g.fx.DatacenterID,
			Name:         g.fx.VDCName,
			Location:     g.fx.Location,
			ProductGroup: g.fx.ProductGroup,
			Meters: []InvoiceMeter{{
				MeterID:      g.fx.MeterID,
				MeterDesc:    g.fx.MeterDesc,
				ProductGroup: g.fx.ProductGroup,
				Quantity: Money{
					Quantity: float64(g.fx.Quantity),
					Unit:     g.fx.QuantityUnit,
				},
				Rate:   Money{Quantity: amount, Unit: g.fx.Currency},
				Amount: Money{Quantity: amount, Unit: g.fx.Currency},
			}},
			Rebate: Rebate{
				Amount: Money{Quantity: 0, Unit: g.fx.Currency},
			},
		})
	}

	return resp
}

// Catalog builds the product catalog body.
func (g *Generator) Catalog(p CatalogParams) ProductCatalog {
	unitCost := g.fx.UnitCost
	if p.UnitCost != nil {
		unitCost = *p.UnitCost
	}

	contract := g.contractID(p.ContractID)
	return ProductCatalog{
		Metadata: CatalogMetadata{
			ContractID: contract,
			CustomerID: g.fx.CustomerID,
			Reference:  strconv.FormatInt(contract, 10),
		},
		Liability: g.fx.ProductLiability,
		Products: []Product{{
			MeterID:   g.fx.ProductMeterID,
			MeterDesc: g.fx.ProductMeterDesc,
			Unit:      g.fx.ProductUnit,
			UnitCost: Money{
				Quantity: unitCost,
				Unit:     g.fx.Currency,
			},
		}},
	}
}

// Traffic builds a traffic report for one contract and period.
func (g *Generator) Traffic(p TrafficParams) TrafficReport {
	period := g.period(p.Period)

	resp := TrafficReport{
		Metadata: ReportMetadata{
			CustomerID: g.fx.CustomerID,
			ContractID: g.contractID(p.ContractID),
			Period:     period,
		},
		Datacenters: []TrafficDatacenter{},
	}

	if orTrue(p.IncludeData) {
		from, to := MonthSpan(period)
		resp.Datacenters = append(resp.Datacenters, TrafficDatacenter{
			VDCUUID: g.fx.VDCUUID,
			Name:    g.fx.VDCName,
			Data: []TrafficRecord{{
				ResourceType: "NIC",
				ResourceUUID: g.fx.ResourceUUID,
				From:         from,
				To:           to,
				ItemStub:     g.fx.TrafficItemStub,
				Value:        g.fx.TrafficValue,
				ValueDivisor: g.fx.ValueDivisor,
			}},
		})
	}

	return resp
}

// Utilization builds a utilization report for one contract and period.
func (g *Generator) Utilization(p UtilizationParams) UtilizationReport {
	period := g.period(p.Period)

	resp := UtilizationReport{
		Metadata: ReportMetadata{
			CustomerID: g.fx.CustomerID,
			ContractID: g.contractID(p.ContractID),
			Period:     period,
		},
		Datacenters: []UtilizationDatacenter{},
	}

	if orTrue(p.IncludeData) {
		from, to := MonthSpan(period)
		resp.Datacenters = append(resp.Datacenters, UtilizationDatacenter{
			VDCUUID: g.fx.VDCUUID,
			Name:    g.fx.VDCName,
			Data: []UtilizationRecord{{
				ResourceType: "SERVER",
				ResourceUUID: g.fx.ResourceUUID,
				From:         from,
				To:           to,
				Utilization:  g.fx.Utilization,
			}},
		})
	}

	return resp
}

// contractID resolves the caller-supplied path string to the numeric id
// emitted on the wire, falling back to the fixture default.
func (g *Generator) contractID(s string) int64 {
	if s == "" {
		return g.fx.ContractID
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return g.fx.ContractID
	}
	return n
}

func (g *Generator) period(s string) string {
	if s == "" {
		return g.fx.Period
	}
	return s
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
