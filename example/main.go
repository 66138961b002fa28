package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smartystreets/sqlcompat"
	"github.com/smartystreets/sqlcompat/adapter"
	"github.com/smartystreets/sqlcompat/internal/querier"
)

func main() {
	log.SetFlags(log.Ldate | log.Lmicroseconds | log.Llongfile)
	logger := log.New(log.Writer(), log.Prefix(), log.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := sql.Open("sqlite3", "file:example?mode=memory&cache=shared")
	if err != nil {
		log.Fatalf("[ERROR] Unable to open database [%s].", err)
	}
	handle.SetMaxOpenConns(1)

	driver := adapter.New(adapter.WrapDB(handle))
	defer func() { _ = driver.Close() }()

	if _, err := handle.ExecContext(ctx, "CREATE TABLE sqlc_test (id INTEGER PRIMARY KEY, name TEXT NOT NULL, description TEXT)"); err != nil {
		log.Fatalf("[ERROR] Unable to create schema [%s].", err)
	}

	queries := querier.New(sqlcompat.NewConnection(driver, sqlcompat.Options.Logger(logger)))

	bar, bork := "bar", "bork"
	for _, item := range []struct {
		name        string
		description *string
	}{{"foo", &bar}, {"baz", &bork}, {"qux", nil}} {
		if err := queries.InsertOne(ctx, item.name, item.description); err != nil {
			log.Fatalf("[ERROR] Unable to insert [%s].", err)
		}
	}

	if row, err := queries.SelectOne(ctx, "foo"); err != nil {
		log.Fatalf("[ERROR] Unable to select [%s].", err)
	} else {
		log.Printf("[INFO] Selected [%d %s %s].", row.ID, row.Name, *row.Description)
	}

	for row, err := range queries.SelectMany(ctx) {
		if err != nil {
			log.Fatalf("[ERROR] Unable to stream [%s].", err)
		}
		log.Printf("[INFO] Streamed [%d %s].", row.ID, row.Name)
	}

	log.Println("Example concluded...")
}
