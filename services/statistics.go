package services

import (
	"sort"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatisticsFilter limits statistics to orders placed between Start and
// End, both inclusive calendar days. Nil bounds are open.
type StatisticsFilter struct {
	Start *time.Time
	End   *time.Time
}

// ParseStatisticsFilter reads YYYY-MM-DD bounds. Unparsable values are
// ignored.
func ParseStatisticsFilter(start, end string) StatisticsFilter {
	var f StatisticsFilter
	if t, err := time.Parse(utils.DateLayout, start); err == nil {
		f.Start = &t
	}
	if t, err := time.Parse(utils.DateLayout, end); err == nil {
		f.End = &t
	}
	return f
}

// where limits query to orders placed on the filter's days
func (f StatisticsFilter) where(query *gorm.DB) *gorm.DB {
	if f.Start != nil {
		query = query.Where("order_date >= ?", dateOf(*f.Start))
	}
	if f.End != nil {
		query = query.Where("order_date < ?", dateOf(*f.End).AddDate(0, 0, 1))
	}
	return query
}

// BookSales is the sales of one book by a bookstore
type BookSales struct {
	BookID    uuid.UUID `json:"book_id"`
	Title     string    `json:"title"`
	ISBN      string    `json:"isbn"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   int64     `json:"revenue"`
}

// Statistics summarises a bookstore's sales. Revenue counts item prices
// before coupon discounts and shipping.
type Statistics struct {
	Start          *time.Time  `json:"start_date,omitempty"`
	End            *time.Time  `json:"end_date,omitempty"`
	OrderCount     int64       `json:"order_count"`
	TotalRevenue   int64       `json:"total_revenue"`
	TotalBooksSold int64       `json:"total_books_sold"`
	Books          []BookSales `json:"books"`
}

// StoreStatistics computes revenue and units sold for the bookstore
func StoreStatistics(db *gorm.DB, bookstoreID uuid.UUID, filter StatisticsFilter) (*Statistics, error) {
	var orders []models.Order
	query := withOrderDetails(db).Where("bookstore_id = ?", bookstoreID)
	err := filter.where(query).
		Order("order_date").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	stats := &Statistics{Start: filter.Start, End: filter.End, Books: []BookSales{}}
	byBook := map[uuid.UUID]*BookSales{}
	for _, order := range orders {
		stats.OrderCount++

		for _, item := range order.Items {
			// Only count what this bookstore sold
			if item.Listing.BookstoreID != bookstoreID {
				continue
			}
			revenue := item.Price * int64(item.Quantity)
			stats.TotalRevenue += revenue
			stats.TotalBooksSold += int64(item.Quantity)

			sales, ok := byBook[item.Listing.BookID]
			if !ok {
				sales = &BookSales{
					BookID: item.Listing.BookID,
					Title:  item.Listing.Book.Title,
					ISBN:   item.Listing.Book.ISBN,
				}
				byBook[item.Listing.BookID] = sales
			}
			sales.UnitsSold += int64(item.Quantity)
			sales.Revenue += revenue
		}
	}

	for _, sales := range byBook {
		stats.Books = append(stats.Books, *sales)
	}
	sort.Slice(stats.Books, func(i, j int) bool {
		if stats.Books[i].Revenue != stats.Books[j].Revenue {
			return stats.Books[i].Revenue > stats.Books[j].Revenue
		}
		return stats.Books[i].Title < stats.Books[j].Title
	})
	return stats, nil
}
