package main

import (
	"encoding/json"
	"exp/internal/db"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	dbPath := flag.String("db", "/tmp/rscurve/rscurve.db", "Path to database file")
	queryType := flag.String("query", "stats", "Query type: stats, covers, curve, verdicts, raw")
	channel := flag.String("channel", "red", "Channel for -query curve")
	strategy := flag.String("strategy", "sequential", "Strategy for -query curve")
	rawSQL := flag.String("sql", "", "Raw SQL query to execute")

	flag.Parse()

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	switch *queryType {
	case "stats":
		count, err := database.CountResults()
		if err != nil {
			log.Fatalf("Failed to count results: %v", err)
		}
		fmt.Printf("Total results: %d\n", count)

	case "covers":
		covers, err := database.ListCovers()
		if err != nil {
			log.Fatalf("Failed to list covers: %v", err)
		}
		printJSON(covers)

	case "curve":
		curve, err := database.RateCurve(*channel, *strategy)
		if err != nil {
			log.Fatalf("Failed to get rate curve: %v", err)
		}
		printJSON(curve)

	case "verdicts":
		stats, err := database.GetVerdictStats()
		if err != nil {
			log.Fatalf("Failed to get verdict stats: %v", err)
		}
		printJSON(stats)

	case "raw":
		if *rawSQL == "" {
			log.Fatal("Please provide SQL query with -sql flag")
		}
		rows, err := database.ExecuteRawQuery(*rawSQL)
		if err != nil {
			log.Fatalf("Failed to execute query: %v", err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			log.Fatalf("Failed to get columns: %v", err)
		}

		fmt.Println("Columns:", cols)
		for rows.Next() {
			values := make([]any, len(cols))
			valuePtrs := make([]any, len(cols))
			for i := range values {
				valuePtrs[i] = &values[i]
			}

			if err := rows.Scan(valuePtrs...); err != nil {
				log.Fatalf("Failed to scan row: %v", err)
			}

			for i, col := range cols {
				fmt.Printf("%s: %v\n", col, values[i])
			}
			fmt.Println("---")
		}

	default:
		log.Fatalf("Unknown query type: %s", *queryType)
	}
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("Failed to encode JSON: %v", err)
	}
}
