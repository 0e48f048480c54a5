// Command staffctl walks a running staffing API through create, list, get, update and delete.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/pkg/client"
)

func main() {
	baseURL := flag.String("base-url", client.DefaultBaseURL, "staffing API base URL")
	email := flag.String("email", "", "email for the demo record (random when empty)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := client.New(client.Options{
		BaseURL: *baseURL,
		Retry:   client.RetryConfig{MaxAttempts: 3},
	})

	if *email == "" {
		*email = fmt.Sprintf("john.doe+%s@example.com", uuid.NewString()[:8])
	}

	if err := run(ctx, api, *email, logger); err != nil {
		logger.Error("walkthrough failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("all steps completed")
}

func run(ctx context.Context, api client.StaffAPI, email string, logger *zap.Logger) error {
	created, err := api.CreateStaff(ctx, client.CreateStaffRequest{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      email,
		Position:   "Developer",
		Department: client.String("Engineering"),
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	logger.Info("created staff member", zap.Any("staff", created))

	list, err := api.ListStaff(ctx, client.ListOptions{Page: 1, Limit: 10})
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	logger.Info("listed staff", zap.Int("count", len(list.Data)), zap.Any("pagination", list.Pagination))

	fetched, err := api.GetStaff(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	logger.Info("fetched staff member", zap.Any("staff", fetched))

	updated, err := api.UpdateStaff(ctx, fetched.ID, client.UpdateStaffRequest{
		Position: client.String("Senior Developer"),
		Status:   client.String("active"),
	})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	logger.Info("updated staff member", zap.Any("staff", updated))

	if err := api.DeleteStaff(ctx, updated.ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	logger.Info("deleted staff member", zap.String("id", updated.ID))
	return nil
}
