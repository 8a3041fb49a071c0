package health

import "context"

type RecordRepository interface {
	CreateRecord(ctx context.Context, rec HealthRecord) error
	GetRecordByID(ctx context.Context, id string) (HealthRecord, error)
	UpdateRecord(ctx context.Context, rec HealthRecord) error
	DeleteRecord(ctx context.Context, id string) error
	ListRecordsByDog(ctx context.Context, dogID string) ([]HealthRecord, error)
	ListRecordsByOwner(ctx context.Context, ownerUserID string) ([]HealthRecord, error)
}

type MedicationRepository interface {
	CreateMedication(ctx context.Context, m Medication) error
	GetMedicationByID(ctx context.Context, id string) (Medication, error)
	UpdateMedication(ctx context.Context, m Medication) error
	DeleteMedication(ctx context.Context, id string) error
	ListMedicationsByDog(ctx context.Context, dogID string) ([]Medication, error)
	ListMedicationsByOwner(ctx context.Context, ownerUserID string) ([]Medication, error)
}

type Repository interface {
	RecordRepository
	MedicationRepository
}
