// Package seed loads the demo dataset: three clinics with distinct standings
// and four patients whose histories span them. Intended for local development
// and demos, enabled via SEED_DEMO_DATA.
package seed

import (
	"context"
	"fmt"

	"carelink/internal/clinic"
	"carelink/internal/record"
)

// ClinicWriter is the write surface seeding needs from a clinic store.
type ClinicWriter interface {
	Put(ctx context.Context, c clinic.Clinic) error
}

// RecordWriter is the write surface seeding needs from a record store.
type RecordWriter interface {
	Put(ctx context.Context, rec record.PatientRecord) error
}

// Demo loads the demo clinics and patient records. It overwrites clinics with
// the same ids and appends records, so it should run against empty stores.
func Demo(ctx context.Context, clinics ClinicWriter, records RecordWriter) error {
	for _, c := range DemoClinics() {
		if err := clinics.Put(ctx, c); err != nil {
			return fmt.Errorf("seed clinic %s: %w", c.ID, err)
		}
	}
	for _, rec := range DemoRecords() {
		if err := records.Put(ctx, rec); err != nil {
			return fmt.Errorf("seed record %s: %w", rec.ID, err)
		}
	}
	return nil
}

// DemoClinics returns the three demo clinics: one trusted contributor, one
// non-participant and one basic participant.
func DemoClinics() []clinic.Clinic {
	return []clinic.Clinic{
		{ID: "A", Name: "Clinic A", OptedIn: true, ContributionPct: 85},
		{ID: "B", Name: "Clinic B", OptedIn: false, ContributionPct: 0},
		{ID: "C", Name: "Clinic C", OptedIn: true, ContributionPct: 30},
	}
}

// DemoRecords returns the demo patient histories. Patient one spans clinics A
// and C, patient three spans B and C, the rest are single-clinic.
func DemoRecords() []record.PatientRecord {
	fp1 := record.Fingerprint("John Doe", "1990-01-15", "1234")
	fp2 := record.Fingerprint("Jane Smith", "1985-03-22", "5678")
	fp3 := record.Fingerprint("Alex Rivera", "1978-11-03", "9012")
	fp4 := record.Fingerprint("Maria Chen", "2000-07-20", "3456")

	return []record.PatientRecord{
		{
			ID:            "rec1a",
			ClinicID:      "A",
			Fingerprint:   fp1,
			StartDate:     "2023-01-15",
			EndDate:       "2023-06-20",
			Conditions:    []string{"Hypertension", "Type 2 Diabetes"},
			Interventions: []string{"Medication Management", "Lifestyle Counseling"},
			ResponseTrend: record.TrendImproving,
			RedFlags:      []string{"Non-adherence to medication"},
			Timeline: []string{
				"Initial diagnosis Jan 2023",
				"Medication started Feb 2023",
				"Improvement noted by May 2023",
			},
		},
		{
			ID:            "rec1c",
			ClinicID:      "C",
			Fingerprint:   fp1,
			StartDate:     "2023-07-01",
			EndDate:       "2024-01-10",
			Conditions:    []string{"Hypertension", "Type 2 Diabetes", "High Cholesterol"},
			Interventions: []string{"Medication Management", "Dietary Changes", "Exercise Program"},
			ResponseTrend: record.TrendPlateau,
			RedFlags:      []string{"Elevated BP readings"},
			Timeline: []string{
				"Transferred care Jul 2023",
				"Cholesterol added Aug 2023",
				"Stable through Dec 2023",
			},
		},
		{
			ID:            "rec2a",
			ClinicID:      "A",
			Fingerprint:   fp2,
			StartDate:     "2022-05-10",
			EndDate:       "2023-02-15",
			Conditions:    []string{"Asthma", "Seasonal Allergies"},
			Interventions: []string{"Inhaler Therapy", "Allergy Management"},
			ResponseTrend: record.TrendImproving,
			RedFlags:      []string{"Frequent ER visits"},
			Timeline: []string{
				"Asthma diagnosis May 2022",
				"Inhaler started Jun 2022",
				"Reduced ER visits by Sep 2022",
			},
		},
		{
			ID:            "rec3b",
			ClinicID:      "B",
			Fingerprint:   fp3,
			StartDate:     "2023-03-10",
			EndDate:       "2023-09-25",
			Conditions:    []string{"Chronic Lower Back Pain", "Sciatica"},
			Interventions: []string{"Manual Therapy", "Core Strengthening"},
			ResponseTrend: record.TrendPlateau,
			RedFlags:      []string{"Recurring flare-ups"},
			Timeline: []string{
				"Back pain history Mar 2023",
				"Manual therapy started Apr 2023",
				"Plateau through Sep 2023",
			},
		},
		{
			ID:            "rec3c",
			ClinicID:      "C",
			Fingerprint:   fp3,
			StartDate:     "2023-10-05",
			EndDate:       "2024-03-15",
			Conditions:    []string{"Chronic Lower Back Pain", "Sciatica", "Hip Bursitis"},
			Interventions: []string{"Shockwave Therapy", "Pilates Program"},
			ResponseTrend: record.TrendImproving,
			RedFlags:      []string{},
			Timeline: []string{
				"Transferred Oct 2023",
				"Shockwave started Nov 2023",
				"Significant improvement by Feb 2024",
			},
		},
		{
			ID:            "rec4a",
			ClinicID:      "A",
			Fingerprint:   fp4,
			StartDate:     "2024-01-08",
			EndDate:       "2024-06-30",
			Conditions:    []string{"Rotator Cuff Tear", "Frozen Shoulder"},
			Interventions: []string{"Post-surgical Rehab", "ROM Exercises"},
			ResponseTrend: record.TrendPlateau,
			RedFlags:      []string{"Post-op complications", "Slow ROM recovery"},
			Timeline: []string{
				"Surgery Jan 2024",
				"Rehab started Feb 2024",
				"Limited progress through Jun 2024",
			},
		},
	}
}
