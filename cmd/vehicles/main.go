package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"vehicledb/internal/config"
	"vehicledb/internal/logger"
	"vehicledb/pkg/apiclient"
	"vehicledb/pkg/authstore"
	"vehicledb/pkg/ui"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	server := flag.String("server", cfg.ServerURL, "vehicledb API base URL")
	cookies := flag.String("cookies", cfg.CookieFile, "file keeping the session cookie between runs; empty keeps it in memory")
	flag.Parse()

	log := logger.Load(os.Stderr, cfg.LogLevel)

	var opts []apiclient.Option
	save := func() {}
	if *cookies != "" {
		jar, err := apiclient.OpenCookieJar(*cookies)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cookies:", err)
			os.Exit(1)
		}
		opts = append(opts, apiclient.WithCookieJar(jar))
		save = func() {
			if err := jar.Save(); err != nil {
				log.Error("save cookies", "error", err, "file", *cookies)
			}
		}
	}

	client, err := apiclient.New(strings.TrimRight(*server, "/"), log, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "client:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := authstore.New(client, log)
	stopSaving := store.Subscribe(func(authstore.State) { save() })
	defer stopSaving()
	go store.CheckSession(ctx)

	app := ui.NewApp(store, client, os.Stdin, os.Stdout, log)
	err = app.Run(ctx)
	save()
	if err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
