package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/wealthflow"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// statement is the JSON read from a statement image.
type statement struct {
	Assets []struct {
		Name       string          `json:"name"`
		Type       string          `json:"type"`
		Value      decimal.Decimal `json:"value"`
		Liquidity  string          `json:"liquidity"`
		ReturnRate float64         `json:"returnRate"`
	} `json:"assets"`
	Liabilities []struct {
		Name           string          `json:"name"`
		Type           string          `json:"type"`
		Amount         decimal.Decimal `json:"amount"`
		InterestRate   float64         `json:"interestRate"`
		MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	} `json:"liabilities"`
}

func statementSchema() *genai.Schema {
	str := func(desc string, enum ...string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc, Enum: enum}
	}
	num := func(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeNumber, Description: desc} }
	assetTypes := make([]string, len(wealthflow.AssetTypes))
	for i, t := range wealthflow.AssetTypes {
		assetTypes[i] = string(t)
	}
	liabilityTypes := make([]string, len(wealthflow.LiabilityTypes))
	for i, t := range wealthflow.LiabilityTypes {
		liabilityTypes[i] = string(t)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"assets": {Type: genai.TypeArray, Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":       str("Name of the item."),
					"type":       str("Asset type.", assetTypes...),
					"value":      num("Value, without currency symbol."),
					"liquidity":  str("How fast it can be sold.", "High", "Medium", "Low"),
					"returnRate": num("Annual return in percent, 0 if not visible."),
				},
				Required: []string{"name", "type", "value"},
			}},
			"liabilities": {Type: genai.TypeArray, Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":           str("Name of the item."),
					"type":           str("Liability type.", liabilityTypes...),
					"amount":         num("Outstanding amount, without currency symbol."),
					"interestRate":   num("Annual interest rate in percent, 0 if not visible."),
					"monthlyPayment": num("Monthly payment, 0 if not visible."),
				},
				Required: []string{"name", "type", "amount"},
			}},
		},
		Required: []string{"assets", "liabilities"},
	}
}

const statementPrompt = `Analyze this image, a screenshot of a financial account (bank app, brokerage app or credit card statement).

Extract all visible assets (deposits, stocks, funds, total value) and liabilities (credit card due, loans).

Rules:
1. Identify the name of each item (e.g. "TSMC", "Checking account", "Credit card bill").
2. Identify the amount or value. Ignore currency symbols like '$', 'NT$', 'TWD'.
3. Use the closest type; if unsure use 'other'.
4. For assets, estimate the liquidity from the type (stocks and cash are High, real estate is Low).
5. Set interest and return rates only when visible, otherwise 0.`

// ParseStatement reads the assets and liabilities shown on a statement
// image. Returned items have no id.
func (g *Gemini) ParseStatement(ctx context.Context, image []byte, mimeType string) (wealthflow.Snapshot, error) {
	if len(image) == 0 {
		return wealthflow.Snapshot{}, fmt.Errorf("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(statementPrompt),
	}
	var st statement
	if err := g.generateJSON(ctx, "statement", parts, "", statementSchema(), &st); err != nil {
		return wealthflow.Snapshot{}, err
	}
	return st.snapshot(g.currency), nil
}

// snapshot maps the response to wealthflow items, dropping nameless lines
// and falling back to 'other' for unknown types.
func (st statement) snapshot(currency string) wealthflow.Snapshot {
	var s wealthflow.Snapshot
	for _, a := range st.Assets {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		t := wealthflow.AssetType(a.Type)
		if !slices.Contains(wealthflow.AssetTypes, t) {
			t = wealthflow.OtherAsset
		}
		liq := wealthflow.Liquidity(a.Liquidity)
		switch liq {
		case wealthflow.HighLiquidity, wealthflow.MediumLiquidity, wealthflow.LowLiquidity:
		default:
			liq = wealthflow.MediumLiquidity
		}
		s.Assets = append(s.Assets, wealthflow.Asset{
			Name:       strings.TrimSpace(a.Name),
			Type:       t,
			Value:      wealthflow.M(a.Value.Abs(), currency),
			Liquidity:  liq,
			ReturnRate: wealthflow.Percent(a.ReturnRate),
		})
	}
	for _, l := range st.Liabilities {
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		t := wealthflow.LiabilityType(l.Type)
		if !slices.Contains(wealthflow.LiabilityTypes, t) {
			t = wealthflow.OtherLiability
		}
		s.Liabilities = append(s.Liabilities, wealthflow.Liability{
			Name:           strings.TrimSpace(l.Name),
			Type:           t,
			Amount:         wealthflow.M(l.Amount.Abs(), currency),
			InterestRate:   wealthflow.Percent(l.InterestRate),
			MonthlyPayment: wealthflow.M(l.MonthlyPayment.Abs(), currency),
		})
	}
	return s
}
