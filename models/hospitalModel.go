package models

import (
	"time"
)

// Doctor model
type Doctor struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	FirstName    string        `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string        `gorm:"column:last_name;not null;index" json:"last_name"`
	Speciality   string        `gorm:"column:speciality" json:"speciality"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model
type Patient struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	FirstName    string        `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName   string        `gorm:"column:middle_name" json:"middle_name"`
	LastName     string        `gorm:"column:last_name;not null;index" json:"last_name"`
	Sex          string        `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other');not null" json:"sex"`
	DateOfBirth  string        `gorm:"column:date_of_birth;not null;index" json:"date_of_birth"`
	Phone        string        `gorm:"column:phone" json:"phone"`
	Email        string        `gorm:"column:email;index" json:"email"`
	Address      string        `gorm:"column:address" json:"address"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Orders       []Order       `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Appointment statuses. Prescriptions attach to confirmed appointments only.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusFulfilled = "fulfilled"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment model
type Appointment struct {
	ID           uint          `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID    string        `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID     string        `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	DateTime     string        `gorm:"column:date_time;not null;index" json:"date_time"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Status       string        `gorm:"column:status;check:status IN ('scheduled', 'confirmed', 'fulfilled', 'cancelled');not null" json:"status"`
	Patient      Patient       `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor       Doctor        `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Prescription *Prescription `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}
