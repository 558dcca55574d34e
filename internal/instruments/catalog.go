package instruments

import (
	"github.com/shopspring/decimal"

	"github.com/kbukum/alexops/internal/models"
)

const (
	usEquity    = "us_equity"
	intlEquity  = "intl_equity"
	fixedIncome = "fixed_income"
	commodity   = "commodity"
	realEstate  = "real_estate"
)

func ratio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// catalog is the embedded reference universe in load order. The test
// fixture creates positions in SPY, QQQ, BND, VEA and GLD, so those
// symbols must stay in the list or the positions lose their foreign
// key target. Expense ratios are annual fractions (0.0020 = 0.20%).
var catalog = []models.Instrument{
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0009")},
	{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0003")},
	{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0003")},
	{Symbol: "QQQ", Name: "Invesco QQQ Trust", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0020")},
	{Symbol: "IWM", Name: "iShares Russell 2000 ETF", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0019")},
	{Symbol: "VUG", Name: "Vanguard Growth ETF", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0004")},
	{Symbol: "VTV", Name: "Vanguard Value ETF", AssetClass: usEquity, Region: "us", ExpenseRatio: ratio("0.0004")},
	{Symbol: "VEA", Name: "Vanguard FTSE Developed Markets ETF", AssetClass: intlEquity, Region: "intl_developed", ExpenseRatio: ratio("0.0005")},
	{Symbol: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", AssetClass: intlEquity, Region: "intl_emerging", ExpenseRatio: ratio("0.0008")},
	{Symbol: "EFA", Name: "iShares MSCI EAFE ETF", AssetClass: intlEquity, Region: "intl_developed", ExpenseRatio: ratio("0.0033")},
	{Symbol: "EEM", Name: "iShares MSCI Emerging Markets ETF", AssetClass: intlEquity, Region: "intl_emerging", ExpenseRatio: ratio("0.0070")},
	{Symbol: "VXUS", Name: "Vanguard Total International Stock ETF", AssetClass: intlEquity, Region: "global_ex_us", ExpenseRatio: ratio("0.0007")},
	{Symbol: "BND", Name: "Vanguard Total Bond Market ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0003")},
	{Symbol: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0003")},
	{Symbol: "TLT", Name: "iShares 20+ Year Treasury Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0015")},
	{Symbol: "LQD", Name: "iShares iBoxx $ Investment Grade Corporate Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0014")},
	{Symbol: "HYG", Name: "iShares iBoxx $ High Yield Corporate Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0049")},
	{Symbol: "TIP", Name: "iShares TIPS Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0019")},
	{Symbol: "SHY", Name: "iShares 1-3 Year Treasury Bond ETF", AssetClass: fixedIncome, Region: "us", ExpenseRatio: ratio("0.0015")},
	{Symbol: "GLD", Name: "SPDR Gold Shares", AssetClass: commodity, Region: "global", ExpenseRatio: ratio("0.0040")},
	{Symbol: "SLV", Name: "iShares Silver Trust", AssetClass: commodity, Region: "global", ExpenseRatio: ratio("0.0050")},
	{Symbol: "VNQ", Name: "Vanguard Real Estate ETF", AssetClass: realEstate, Region: "us", ExpenseRatio: ratio("0.0013")},
}

// Catalog returns a copy of the embedded catalog in load order.
func Catalog() []models.Instrument {
	out := make([]models.Instrument, len(catalog))
	copy(out, catalog)
	return out
}

// Count returns the catalog size.
func Count() int { return len(catalog) }
