package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	LoadConfig()

	if AppConfig.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", AppConfig.Port)
	}
	if AppConfig.ZhipuBaseURL != "https://open.bigmodel.cn/api/paas/v4" {
		t.Errorf("unexpected default base URL: %q", AppConfig.ZhipuBaseURL)
	}
	if AppConfig.ZhipuModel != "glm-4.5-flash" {
		t.Errorf("unexpected default model: %q", AppConfig.ZhipuModel)
	}
	if AppConfig.FreeMonthlyRequests != 2 {
		t.Errorf("expected 2 free monthly requests, got %d", AppConfig.FreeMonthlyRequests)
	}
	if AppConfig.QuotaRetentionMonths != 3 {
		t.Errorf("expected 3 retention months, got %d", AppConfig.QuotaRetentionMonths)
	}
	if AppConfig.SharedDir != "shared" {
		t.Errorf("unexpected shared dir: %q", AppConfig.SharedDir)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("FREE_MONTHLY_REQUESTS", "5")
	t.Setenv("PAY_PROVIDER", "paddle")

	LoadConfig()

	if AppConfig.Port != "9999" {
		t.Errorf("expected port 9999, got %q", AppConfig.Port)
	}
	if AppConfig.FreeMonthlyRequests != 5 {
		t.Errorf("expected 5 free monthly requests, got %d", AppConfig.FreeMonthlyRequests)
	}
	if AppConfig.PayProvider != "paddle" {
		t.Errorf("expected provider paddle, got %q", AppConfig.PayProvider)
	}
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("FREE_MONTHLY_REQUESTS", "not-a-number")

	LoadConfig()

	if AppConfig.FreeMonthlyRequests != 2 {
		t.Errorf("expected fallback to 2, got %d", AppConfig.FreeMonthlyRequests)
	}
}

func TestLoadConfig_UnknownProviderFallsBack(t *testing.T) {
	t.Setenv("PAY_PROVIDER", "stripe")

	LoadConfig()

	if AppConfig.PayProvider != "lemon" {
		t.Errorf("expected fallback to lemon, got %q", AppConfig.PayProvider)
	}
}
