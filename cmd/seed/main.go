// Command seed loads a demo business with services and events and prints an
// owner token for the service board endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"bizhub/config"
	"bizhub/database"
	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	"bizhub/models"
	"bizhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.LoadConfig()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db := database.Database()
	for _, coll := range []string{"businesses", "services", "service_events"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{"id": bson.M{"$regex": "^demo-"}}); err != nil {
			log.Fatalf("Failed to clear %s: %v", coll, err)
		}
	}

	ownerID := "demo-owner-" + uuid.New().String()[:8]
	hours := make([]models.WorkingHours, 0, 6)
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		hours = append(hours, models.WorkingHours{Weekday: int(wd), Open: 9 * 60, Close: 17 * 60})
	}
	biz := &models.Business{
		ID:       "demo-business",
		Name:     "Demo Studio",
		OwnerID:  ownerID,
		Plan:     models.PlanPro,
		Currency: "USD",
		Timezone: "UTC",
		PaymentMethods: []models.PaymentMethod{
			{ID: "card", Type: "card", Label: "Credit card", Enabled: true},
			{ID: "bank", Type: "bank_transfer", Label: "Bank transfer", Description: "Pay within 7 days", Enabled: true},
		},
		Platforms: []models.Platform{
			{ID: "zoom", Name: "Zoom", Enabled: true},
			{ID: "meet", Name: "Google Meet", Enabled: true},
		},
		WorkingHours: hours,
	}
	if err := businessRepo.NewMongoBusinessRepo().Create(ctx, biz); err != nil {
		log.Fatalf("Failed to create business: %v", err)
	}

	catalog := catalogRepo.NewMongoCatalogRepo()
	services := []*models.Service{
		{
			ID: "demo-cleaning", BusinessID: biz.ID, Name: "Home cleaning",
			PriceBase: 0, PriceType: models.PriceTypeUnit, Currency: "USD", Duration: 120,
			HasItems: true, HasExtras: true, ActiveBooking: true,
			Items: []models.ServiceItem{
				{ID: "room", Name: "Room", PriceBase: 10, PriceType: models.PriceTypeUnit, PriceUnit: "room"},
				{ID: "bathroom", Name: "Bathroom", PriceBase: 15, PriceType: models.PriceTypeUnit, PriceUnit: "bathroom"},
			},
			Extras: []models.Extra{
				{ID: "oven", Name: "Oven cleaning", Price: 25, MaxQuantity: 1},
				{ID: "windows", Name: "Window cleaning", Price: 5, MaxQuantity: 10},
			},
			Requirements: []models.Requirement{
				{ID: "access", Title: "Access", Content: "Someone must let the cleaner in.", Required: true},
			},
			Questions: []models.Question{
				{ID: "pets", Prompt: "Do you have pets?", Type: models.QuestionSingleChoice, Options: []string{"yes", "no"}, Required: true},
				{ID: "notes", Prompt: "Anything else we should know?", Type: models.QuestionText},
			},
		},
		{
			ID: "demo-workshop", BusinessID: biz.ID, Name: "Pottery workshop",
			PriceBase: 45, PriceType: models.PriceTypeFixed, Currency: "USD", Duration: 90,
			ActiveBooking: true,
		},
		{
			ID: "demo-quote", BusinessID: biz.ID, Name: "Custom renovation quote",
			PriceType: models.PriceTypeQuote, Currency: "USD",
		},
	}
	for _, svc := range services {
		if err := catalog.CreateService(ctx, svc); err != nil {
			log.Fatalf("Failed to create service %s: %v", svc.ID, err)
		}
	}

	start := time.Now().UTC()
	event := &models.Event{
		ID: "demo-workshop-spring", BusinessID: biz.ID, ServiceID: "demo-workshop",
		Name: "Spring session", Duration: 90,
		StartDate: start.Format("2006-01-02"), EndDate: start.AddDate(0, 0, 21).Format("2006-01-02"),
	}
	if err := catalog.CreateEvent(ctx, event); err != nil {
		log.Fatalf("Failed to create event: %v", err)
	}

	token, err := utils.GenerateOwnerToken(ownerID, "owner@demo.test", 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to sign owner token: %v", err)
	}
	fmt.Printf("Seeded business %s with %d services.\nOwner token: %s\n", biz.ID, len(services), token)
}
