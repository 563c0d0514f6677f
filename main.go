package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/expresscheckout/lib/mycache"
	"github.com/MarcGrol/expresscheckout/lib/mypublisher"
	"github.com/MarcGrol/expresscheckout/lib/mypubsub"
	"github.com/MarcGrol/expresscheckout/lib/myqueue"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/checkoutapplepay"
	"github.com/MarcGrol/expresscheckout/services/checkoutgooglepay"
	"github.com/MarcGrol/expresscheckout/services/checkoutpaypal"
	"github.com/MarcGrol/expresscheckout/services/checkoutsession"
	"github.com/MarcGrol/expresscheckout/services/checkoutstatus"
	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/deliveries"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/finalization"
	"github.com/MarcGrol/expresscheckout/services/regions"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	sessionStore, sessionStoreCleanup, err := mystore.New[shopapi.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	gateway := shopgateway.NewClient(optionalEnv("SHOP_GATEWAY_URL", "http://localhost:8081"))

	sessionService := checkoutsession.New(sessionStore, nower, uuider)
	regionService := regions.New(gateway)
	deliveryService := deliveries.New(gateway)
	courierService := courierselect.New(gateway, sessionService)

	frames := checkoutgooglepay.NewFrameGateway(uuider)

	settlementClient := finalization.NewSettlementClient(optionalEnv("SETTLEMENT_URL", "http://localhost:8082/order-payment"))
	dispatcher := finalization.NewDispatcher(finalization.Config{
		PaymentErrorURL:   optionalEnv("PAYMENT_ERROR_URL", "/payment/error"),
		PaymentPendingURL: optionalEnv("PAYMENT_PENDING_URL", "/payment/pending"),
	}, settlementClient, frames, uuider)

	orchestrator := expresscheckout.New(sessionService, regionService, deliveryService, courierService,
		gateway, dispatcher, publisher)
	err = orchestrator.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating topics: %s", err)
	}

	err = checkoutpaypal.NewWebService(orchestrator, gateway).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering paypal endpoints: %s", err)
	}

	err = checkoutapplepay.NewWebService(orchestrator, gateway).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering apple pay endpoints: %s", err)
	}

	initDataCache, cacheCleanup, err := mycache.New[checkoutgooglepay.InitDataCacheEntry](c)
	if err != nil {
		log.Fatalf("Error creating init-data cache: %s", err)
	}
	defer cacheCleanup()

	err = checkoutgooglepay.NewWebService(orchestrator, gateway, initDataCache, frames).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering google pay endpoints: %s", err)
	}

	statusStore, statusStoreCleanup, err := mystore.New[checkoutstatus.CheckoutStatus](c)
	if err != nil {
		log.Fatalf("Error creating status store: %s", err)
	}
	defer statusStoreCleanup()

	err = checkoutstatus.NewWebService(statusStore, pubsub, nower).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering status endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func optionalEnv(name string, fallback string) string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	return value
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
