package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogStats summarises one day of BookMall logs
type LogStats struct {
	TotalErrors       int
	LoginSuccess      int
	LoginFailures     int
	OrdersPlaced      int
	CheckoutFailures  int
	CouponsRejected   int
	Registrations     int
	AccountActivities map[string]int
	ErrorPatterns     map[string]int
}

var (
	loggedInRegex   = regexp.MustCompile(`(customer|staff|admin) (\S+) logged in`)
	loginFailRegex  = regexp.MustCompile(`Login attempt failed for (?:customer|staff|admin) ([^\s:]+)`)
	placedRegex     = regexp.MustCompile(`Customer (\S+) placed order`)
	checkoutFailure = regexp.MustCompile(`Checkout failed for ([^\s:]+):`)
	// Log lines look like "ERROR: 2026/10/19 12:00:00 file.go:42: message"
	logPrefixRegex = regexp.MustCompile(`^[A-Z]+: \S+ \S+ \S+: `)
)

func newLogStats() *LogStats {
	return &LogStats{
		AccountActivities: make(map[string]int),
		ErrorPatterns:     make(map[string]int),
	}
}

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the log files")
	day := flag.String("date", time.Now().Format("2006-01-02"), "day to analyze (YYYY-MM-DD)")
	flag.Parse()

	stats := newLogStats()
	for name, analyze := range map[string]func(io.Reader, *LogStats) error{
		"error": analyzeErrorLogs,
		"info":  analyzeInfoLogs,
	} {
		logFile := filepath.Join(*logDir, fmt.Sprintf("%s-%s.log", name, *day))
		file, err := os.Open(logFile)
		if err != nil {
			fmt.Printf("Error opening log file %s: %v\n", logFile, err)
			continue
		}
		if err := analyze(file, stats); err != nil {
			fmt.Printf("Error reading log file %s: %v\n", logFile, err)
		}
		file.Close()
	}

	printReport(os.Stdout, stats)
}

func analyzeErrorLogs(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if m := loginFailRegex.FindStringSubmatch(line); m != nil {
			stats.LoginFailures++
			stats.AccountActivities[m[1]]++
		}
		if m := checkoutFailure.FindStringSubmatch(line); m != nil {
			stats.CheckoutFailures++
			stats.AccountActivities[m[1]]++
		}
		if strings.Contains(line, "not applied to checkout") {
			stats.CouponsRejected++
		}

		extractErrorPattern(line, stats)
	}
	return scanner.Err()
}

func analyzeInfoLogs(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := loggedInRegex.FindStringSubmatch(line); m != nil {
			stats.LoginSuccess++
			stats.AccountActivities[m[2]]++
		}
		if m := placedRegex.FindStringSubmatch(line); m != nil {
			stats.OrdersPlaced++
			stats.AccountActivities[m[1]]++
		}
		if strings.Contains(line, " registered") {
			stats.Registrations++
		}
	}
	return scanner.Err()
}

// extractErrorPattern keeps the message up to its first detail
func extractErrorPattern(line string, stats *LogStats) {
	msg := logPrefixRegex.ReplaceAllString(line, "")
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	if msg = strings.TrimSpace(msg); msg != "" {
		stats.ErrorPatterns[msg]++
	}
}

func printReport(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, "\n1. Authentication Statistics:")
	fmt.Fprintf(w, "   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Fprintf(w, "   Registrations: %d\n", stats.Registrations)

	fmt.Fprintln(w, "\n2. Checkout Statistics:")
	fmt.Fprintf(w, "   Orders Placed: %d\n", stats.OrdersPlaced)
	fmt.Fprintf(w, "   Failed Checkouts: %d\n", stats.CheckoutFailures)
	fmt.Fprintf(w, "   Rejected Coupons: %d\n", stats.CouponsRejected)

	fmt.Fprintln(w, "\n3. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n4. Most Active Accounts:")
	for _, entry := range topCounts(stats.AccountActivities, 5) {
		fmt.Fprintf(w, "   %s: %d activities\n", entry.key, entry.count)
	}

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	for _, entry := range topCounts(stats.ErrorPatterns, 5) {
		fmt.Fprintf(w, "   %s: %d occurrences\n", entry.key, entry.count)
	}
}

type keyCount struct {
	key   string
	count int
}

func topCounts(counts map[string]int, limit int) []keyCount {
	list := make([]keyCount, 0, len(counts))
	for key, count := range counts {
		list = append(list, keyCount{key, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
