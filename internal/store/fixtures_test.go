package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func createTestAccount(t *testing.T, testDB *TestDB) Account {
	t.Helper()

	apiKey := "pk_test_" + uuid.New().String()
	metricID := "metric-" + uuid.New().String()

	var account Account
	err := testDB.db.GetContext(context.Background(), &account, `
		INSERT INTO accounts (public_id, name, klaviyo_api_key, conversion_metric_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+accountColumns,
		"acct-"+uuid.New().String(), "Test Account", apiKey, metricID)
	if err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

func createTestUser(t *testing.T, testDB *TestDB, grants AccountGrants) User {
	t.Helper()

	var user User
	err := testDB.db.GetContext(context.Background(), &user, `
		INSERT INTO users (email, grants)
		VALUES ($1, $2)
		RETURNING id, email, grants, created_at, updated_at`,
		uuid.New().String()+"@example.test", grants)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func testCampaignStat(accountID uuid.UUID, campaignID, name string) CampaignStatRecord {
	return CampaignStatRecord{
		AccountID:             accountID,
		CampaignID:            campaignID,
		CampaignMessageID:     "msg-" + campaignID,
		Channel:               "email",
		CampaignName:          name,
		Stats:                 CampaignStats{Opens: 10, Recipients: 100},
		IncludedAudienceIDs:   StringList{},
		IncludedAudienceNames: StringList{},
		ExcludedAudienceIDs:   StringList{},
		ExcludedAudienceNames: StringList{},
		TagIDs:                StringList{},
		TagNames:              StringList{},
	}
}
