package logger

import "testing"

func TestSyncBeforeInit(t *testing.T) {
	saved := Log
	Log = nil
	defer func() { Log = saved }()

	// A deferred Sync in main must be safe even if Init never ran.
	if err := Sync(); err != nil {
		t.Errorf("Sync() before Init error = %v, want nil", err)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("not-a-level"); err == nil {
		t.Error("Init(\"not-a-level\") did not fail")
	}
}

func TestInitSetsGlobal(t *testing.T) {
	saved := Log
	defer func() { Log = saved }()

	if err := Init("debug"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log == nil {
		t.Fatal("Log is nil after Init")
	}
}
