package company

import (
	"strings"

	domcompany "github.com/jsamuelsen11/company-directory/internal/domain/company"
)

// ToDomainCompany converts a downstream CompanyDTO to a domain Company.
// Text fields are trimmed of surrounding whitespace.
func ToDomainCompany(dto *CompanyDTO) domcompany.Company {
	return domcompany.Company{
		ID:          strings.TrimSpace(string(dto.ID)),
		Name:        strings.TrimSpace(dto.Name),
		Logo:        strings.TrimSpace(dto.Logo),
		Location:    strings.TrimSpace(dto.Location),
		Industry:    strings.TrimSpace(dto.Industry),
		Size:        strings.TrimSpace(dto.Size),
		Website:     strings.TrimSpace(dto.Website),
		Description: strings.TrimSpace(dto.Description),
	}
}

// ToDomainCompanyList converts a downstream list to domain companies,
// preserving order.
func ToDomainCompanyList(dto CompanyListDTO) []domcompany.Company {
	companies := make([]domcompany.Company, len(dto.Companies))
	for i := range dto.Companies {
		companies[i] = ToDomainCompany(&dto.Companies[i])
	}
	return companies
}
