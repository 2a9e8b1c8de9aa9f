// mockcounter is a small in-memory stand-in for the counter API, so the
// panel can be developed without the real backend. It serves the list,
// create and import endpoints with generated orders.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
)

var (
	states   = []string{"New York", "California", "Texas", "Washington", "Florida"}
	counties = []string{"Kings", "Orange", "Travis", "King", "Miami-Dade"}
	cities   = []string{"Brooklyn", "Anaheim", "Austin", "Seattle", "Miami"}
)

type store struct {
	orders []counter.Order
	nextID int64
}

func (s *store) add(lat, lng, subtotal float64, ts string) counter.Order {
	rate := 0.04 + rand.Float64()*0.06
	if ts == "" {
		ts = time.Now().UTC().Format("2006-01-02 15:04:05")
	}
	i := rand.Intn(len(states))
	o := counter.Order{
		ID:               s.nextID,
		Latitude:         lat,
		Longitude:        lng,
		Subtotal:         subtotal,
		CompositeTaxRate: rate,
		TaxAmount:        subtotal * rate,
		TotalAmount:      subtotal * (1 + rate),
		Timestamp:        ts,
		StateRate:        rate * 0.6,
		CountyRate:       rate * 0.25,
		CityRate:         rate * 0.1,
		SpecialRates:     rate * 0.05,
		State:            states[i],
		County:           counties[i],
		City:             cities[i],
	}
	s.nextID++
	s.orders = append(s.orders, o)
	return o
}

func main() {
	addr := flag.String("addr", ":9000", "Listen address")
	seed := flag.Int("seed", 137, "Number of generated orders")
	flag.Parse()

	s := &store{nextID: 1}
	for i := 0; i < *seed; i++ {
		day := time.Now().AddDate(0, 0, -rand.Intn(365))
		s.add(
			25+rand.Float64()*20,
			-120+rand.Float64()*45,
			float64(rand.Intn(50000))/100,
			day.UTC().Format("2006-01-02 15:04:05"),
		)
	}

	r := gin.Default()

	r.GET("/counter/orders/list", func(c *gin.Context) {
		matched := filterOrders(s.orders, c)

		page := intQuery(c, "page", 1)
		size := intQuery(c, "page_size", 10)
		numPages := (len(matched) + size - 1) / size
		if numPages == 0 {
			numPages = 1
		}
		if page > numPages {
			page = numPages
		}

		lo := (page - 1) * size
		hi := lo + size
		if hi > len(matched) {
			hi = len(matched)
		}

		c.JSON(http.StatusOK, counter.ListResponse{
			Count:       len(matched),
			NumPages:    numPages,
			CurrentPage: page,
			Results:     matched[lo:hi],
		})
	})

	r.POST("/counter/orders", func(c *gin.Context) {
		var in counter.CreateOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid order payload"})
			return
		}
		o := s.add(in.Latitude, in.Longitude, in.Subtotal, in.Timestamp)
		c.JSON(http.StatusCreated, counter.CreateOrderResponse{ID: o.ID, Timestamp: o.Timestamp})
	})

	r.POST("/counter/orders/import", func(c *gin.Context) {
		f, _, err := c.Request.FormFile(counter.ImportField)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "orders_file is required"})
			return
		}
		defer f.Close()
		n := 5 + rand.Intn(20)
		for i := 0; i < n; i++ {
			s.add(25+rand.Float64()*20, -120+rand.Float64()*45, float64(rand.Intn(50000))/100, "")
		}
		c.JSON(http.StatusOK, counter.ImportResponse{
			Message: fmt.Sprintf("Imported %d orders", n),
		})
	})

	fmt.Fprintf(os.Stderr, "mockcounter listening on %s with %d orders\n", *addr, len(s.orders))
	if err := r.Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func filterOrders(all []counter.Order, c *gin.Context) []counter.Order {
	search := strings.ToLower(c.Query("search"))
	state := c.Query("state")
	county := c.Query("county")
	city := c.Query("city")

	out := make([]counter.Order, 0, len(all))
	for _, o := range all {
		if search != "" {
			hay := strings.ToLower(fmt.Sprintf("%d %s %s %s", o.ID, o.State, o.County, o.City))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		if state != "" && o.State != state {
			continue
		}
		if county != "" && o.County != county {
			continue
		}
		if city != "" && o.City != city {
			continue
		}
		if !withinRange(c, "min_subtotal", "max_subtotal", o.Subtotal) {
			continue
		}
		if !withinRange(c, "min_total", "max_total", o.TotalAmount) {
			continue
		}
		if from := c.Query("from_timestamp"); from != "" && o.Timestamp < from {
			continue
		}
		if to := c.Query("to_timestamp"); to != "" && o.Timestamp > to {
			continue
		}
		out = append(out, o)
	}
	return out
}

func withinRange(c *gin.Context, minKey, maxKey string, v float64) bool {
	if raw := c.Query(minKey); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && v < f {
			return false
		}
	}
	if raw := c.Query(maxKey); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && v > f {
			return false
		}
	}
	return true
}

func intQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}
