package cli

import (
	"testing"
)

func TestPersistentPreRun_UnknownStoreKind(t *testing.T) {
	defer resetCLI()
	catalogRepo = nil
	rootCmd.SetArgs([]string{"--store", "unknown", "list"})
	if err := Execute(); err == nil {
		t.Fatal("expected error for unknown store kind, got nil")
	}
}

func TestPersistentPreRun_FileStoreMissingPath(t *testing.T) {
	defer resetCLI()
	catalogRepo = nil
	rootCmd.SetArgs([]string{"--store", "file", "--data", "", "list"})
	if err := Execute(); err == nil {
		t.Fatal("expected error when file store path is empty, got nil")
	}
}

func TestSell_CustomerRequired(t *testing.T) {
	defer resetCLI()
	seedRepo(t)
	rootCmd.SetArgs([]string{"sell", "--customer", "", "--item", "1:1"})
	if err := Execute(); err == nil {
		t.Fatal("expected error when customer name is missing")
	}
}

func TestAdd_InvalidCost(t *testing.T) {
	defer resetCLI()
	seedRepo(t)
	rootCmd.SetArgs([]string{
		"add",
		"--name", "X", "--brand", "Y", "--country", "Z",
		"--quantity", "1", "--cost", "free",
	})
	if err := Execute(); err == nil {
		t.Fatal("expected error for non-numeric cost")
	}
}

func TestRestock_NonPositiveCost(t *testing.T) {
	defer resetCLI()
	seedRepo(t)
	rootCmd.SetArgs([]string{"restock", "--id", "1", "--quantity", "1", "--cost", "-1"})
	if err := Execute(); err == nil {
		t.Fatal("expected error for non-positive cost")
	}
}
