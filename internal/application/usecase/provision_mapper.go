package usecase

import (
	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

func toProvisionResponse(p *entity.Provision) *dto.ProvisionResponse {
	if p == nil {
		return nil
	}
	return &dto.ProvisionResponse{
		ID:                    p.ID,
		RequestNumber:         p.RequestNumber,
		IsManualRequestNumber: p.IsManualRequestNumber,

		FirstName:     p.FirstName,
		LastName:      p.LastName,
		AddressLine1:  p.AddressLine1,
		Province:      p.Province,
		City:          p.City,
		Barangay:      p.Barangay,
		Landmark:      p.Landmark,
		ContactPhone:  p.ContactPhone,
		AccountNumber: p.AccountNumber,

		Resource:               p.Resource,
		Date:                   p.Date.Format("2006-01-02"),
		PRDispatch:             p.PRDispatch,
		Status:                 p.Status,
		ActivityType:           p.ActivityType,
		VerificationType:       p.VerificationType,
		ActivityLane:           p.ActivityLane,
		ActivityGrouping:       p.ActivityGrouping,
		ActivityClassification: p.ActivityClassification,
		ActivityStatus:         p.ActivityStatus,
		PositionInRoute:        p.PositionInRoute,

		MarketSegment:     p.MarketSegment,
		Zone:              p.Zone,
		Exchange:          p.Exchange,
		NodeLocation:      p.NodeLocation,
		CabinetLocation:   p.CabinetLocation,
		ModemOwnership:    p.ModemOwnership,
		Priority:          p.Priority,
		HomeServiceDevice: p.HomeServiceDevice,
		PackageType:       p.PackageType,
		NEType:            p.NEType,
		ComplaintType:     p.ComplaintType,

		DateCreated:         p.DateCreated,
		DateExtracted:       p.DateExtracted,
		StartedDateTime:     p.StartedDateTime,
		CompletionDateTime:  p.CompletionDateTime,
		Start:               p.Start,
		End:                 p.End,
		Sawa:                p.Sawa,
		TandemOutsideStatus: p.TandemOutsideStatus,

		Latitude:  p.Latitude,
		Longitude: p.Longitude,

		AssignedAuditorID: p.AssignedAuditorID,
		AssignedAuditor:   toUserSummary(p.AssignedAuditor),
		UploadedByID:      p.UploadedByID,
		UploadedBy:        toUserSummary(p.UploadedBy),
		AuditNotes:        p.AuditNotes,
		AuditPhotos:       p.AuditPhotos,
		QualityScore:      p.QualityScore,

		Remarks:      p.Remarks,
		ManagerNotes: p.ManagerNotes,
		ExtendedData: p.ExtendedData,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
