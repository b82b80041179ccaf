package main

import (
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/testsupport/fakeapi"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	role := flag.String("role", string(appointment.RoleProfessional), "session role (admin, profesional, cliente)")
	seed := flag.Bool("seed", true, "store a few sample appointments and clients")
	flag.Parse()

	opts := []fakeapi.Option{fakeapi.WithRole(appointment.ParseRole(*role))}
	if *seed {
		opts = append(opts, fakeapi.WithClients(
			appointment.Client{ID: 7, Username: "maria", Email: "maria@example.com"},
			appointment.Client{ID: 8, Username: "jorge", Email: "jorge@example.com"},
		))
	}
	backend := fakeapi.New(opts...)
	if *seed {
		seedSamples(backend)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("fake agenda API listening on %s as %s", *addr, strings.TrimSpace(*role))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to serve: %v", err)
	}
}

func seedSamples(backend *fakeapi.Server) {
	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	slot := func(hour int) (string, string) {
		start := day.Add(time.Duration(hour) * time.Hour)
		return start.Format("2006-01-02T15:04:05.000Z"), start.Add(time.Hour).Format("2006-01-02T15:04:05.000Z")
	}
	client := int64(7)

	start, end := slot(14)
	backend.Seed(fakeapi.Record{PatientName: "Ana Torres", Start: start, End: end, ClientID: &client})
	start, end = slot(16)
	backend.Seed(fakeapi.Record{PatientName: "Luis Rojas", Start: start, End: end, Status: "Completada"})
	start, end = slot(18)
	backend.Seed(fakeapi.Record{
		PatientName:        "Carla Paz",
		Start:              start,
		End:                end,
		Status:             "Cancelada",
		CancellationReason: "Viaje",
		CancelledAt:        time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}
