package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

// parseDateRange reads from/to query params (YYYY-MM-DD, to inclusive) and
// falls back to the trailing defaultDays window.
func parseDateRange(r *http.Request, defaultDays int) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(0, 0, -defaultDays)
	to = now

	if f := r.URL.Query().Get("from"); f != "" {
		from, err = parseDate(f)
		if err != nil {
			return from, to, errors.New("from must be YYYY-MM-DD")
		}
	}
	if t := r.URL.Query().Get("to"); t != "" {
		day, err := parseDate(t)
		if err != nil {
			return from, to, errors.New("to must be YYYY-MM-DD")
		}
		to = day.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return from, to, errors.New("to must be after from")
	}
	return from, to, nil
}

func averageOrderValue(revenue float64, orderCount int) float64 {
	if orderCount == 0 {
		return 0
	}
	return revenue / float64(orderCount)
}

func tierDistribution(spends []float64) map[models.Tier]int {
	dist := map[models.Tier]int{
		models.TierBronze: 0,
		models.TierSilver: 0,
		models.TierGold:   0,
		models.TierVIP:    0,
	}
	for _, s := range spends {
		dist[models.TierFor(s)]++
	}
	return dist
}

func SalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r, 30)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := dbhelper.GetSalesTotals(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}
	byDay, err := dbhelper.GetRevenueByDay(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}
	byStatus, err := dbhelper.CountOrdersBy("status", from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}
	byType, err := dbhelper.CountOrdersBy("type", from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"from":                from.Format("2006-01-02"),
		"to":                  to.Format("2006-01-02"),
		"total_revenue":       totals.Revenue,
		"order_count":         totals.OrderCount,
		"average_order_value": averageOrderValue(totals.Revenue, totals.OrderCount),
		"revenue_by_day":      byDay,
		"orders_by_status":    byStatus,
		"orders_by_type":      byType,
	}, "")
}

func MenuPerformanceReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r, 30)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	perf, err := dbhelper.GetMenuPerformance(from, to, 50)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"items": perf,
	}, "")
}

func CustomerReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r, 90)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	spends, err := dbhelper.ListCustomerSpends()
	if err != nil {
		respondInternal(w, err)
		return
	}
	topSpenders, err := dbhelper.ListTopSpenders(10)
	if err != nil {
		respondInternal(w, err)
		return
	}
	newCustomers, err := dbhelper.CountNewCustomers(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"from":              from.Format("2006-01-02"),
		"to":                to.Format("2006-01-02"),
		"total_customers":   len(spends),
		"tier_distribution": tierDistribution(spends),
		"top_spenders":      topSpenders,
		"new_customers":     newCustomers,
	}, "")
}

func ReservationReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r, 30)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	byStatus, err := dbhelper.CountReservationsByStatus(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}
	tables, err := dbhelper.GetTableUtilization(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"from":              from.Format("2006-01-02"),
		"to":                to.Format("2006-01-02"),
		"by_status":         byStatus,
		"table_utilization": tables,
	}, "")
}

func InventoryReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r, 30)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lowStock, err := dbhelper.ListInventoryItems(true, 100, 0)
	if err != nil {
		respondInternal(w, err)
		return
	}
	usage, err := dbhelper.GetInventoryUsage(from, to)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"from":            from.Format("2006-01-02"),
		"to":              to.Format("2006-01-02"),
		"low_stock":       lowStock,
		"estimated_usage": usage,
	}, "")
}
