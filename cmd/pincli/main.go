// pincli compra pines directamente al proveedor con las credenciales de PIN_API_KEY/PIN_API_SECRET.
// No registra la venta en el backend: sirve para soporte y pruebas contra el proveedor.
//
// Uso: go run ./cmd/pincli -product FF100 -qty 23 [-client-name X] [-client-email Y]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb/v3"

	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/pinprovider"
	"github.com/jhoicas/pines-admin-api/pkg/config"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

func main() {
	product := flag.String("product", "", "código del producto")
	qty := flag.Int("qty", 1, "cantidad de pines (1-100)")
	clientName := flag.String("client-name", "", "nombre del cliente final")
	clientEmail := flag.String("client-email", "", "email del cliente final")
	quiet := flag.Bool("quiet", false, "sin barra de progreso")
	flag.Parse()

	cfg, err := config.LoadPinAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	policy, err := pins.ParseFaultPolicy(cfg.PinAPI.FaultPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Política: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := pinprovider.NewClient(cfg.PinAPI.BaseURL, log)
	flow := pins.NewAuthorizeCaptureFlow(provider, pins.FlowConfig{ChunkTimeout: cfg.PinAPI.ChunkTimeout, Policy: policy}, log)

	bar := newProgressBar(*qty, *quiet, os.Stderr)
	res, err := flow.Run(ctx, pins.FlowRequest{
		ProductCode: *product,
		Quantity:    *qty,
		ClientName:  *clientName,
		ClientEmail: *clientEmail,
		Credentials: pinapi.Credentials{APIKey: cfg.PinAPI.Key, APISecret: cfg.PinAPI.Secret},
		OnChunk: func(c pins.ChunkResult) {
			// los lotes fallidos también avanzan la barra: el total es lo pedido
			bar.Add(c.Size)
		},
	})
	bar.Finish()

	for _, p := range res.Pins {
		fmt.Println(p)
	}
	for _, c := range res.Failed() {
		fmt.Fprintf(os.Stderr, "lote %d (%d pines): %v\n", c.Index, c.Size, c.Err)
	}
	fmt.Fprintf(os.Stderr, "orden %s: %d de %d pines\n", res.OrderID, len(res.Pins), res.Requested)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Compra: %v\n", err)
		os.Exit(1)
	}
	if !res.Complete() {
		os.Exit(2)
	}
}

// newProgressBar fija el writer antes de arrancar: el primer refresco ya sale por w.
func newProgressBar(total int, quiet bool, w io.Writer) *pb.ProgressBar {
	if quiet {
		w = io.Discard
	}
	return pb.New(total).SetWriter(w).Start()
}
