package config

import "testing"

func TestValidate(t *testing.T) {

	backupCfg := Config{
		Target:             Backup,
		DBDatabase:         "transcripts",
		DBUsername:         "postgres",
		R2BackupBucketName: "backups",
		R2AccountId:        "account",
		R2AccessKeyId:      "key",
		R2SecretAccessKey:  "secret",
	}

	serverCfg := Config{
		Target:     App,
		DBDatabase: "transcripts",
		DBUsername: "postgres",
		RedisHost:  "localhost",
	}

	workerCfg := serverCfg
	workerCfg.Target = Worker

	missingDB := serverCfg
	missingDB.DBDatabase = ""

	missingR2 := backupCfg
	missingR2.R2SecretAccessKey = ""

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"fetch needs nothing", Config{Target: Fetch}, false},
		{"app with all settings", serverCfg, false},
		{"worker with all settings", workerCfg, false},
		{"backup with all settings", backupCfg, false},
		{"app without a database", missingDB, true},
		{"backup without R2 secrets", missingR2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}
		})
	}
}
