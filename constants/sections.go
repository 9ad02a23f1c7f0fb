package constants

// Section identifies one of the canonical profile record sections.
type Section string

const (
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
)

// Sections lists the canonical sections in display order. Every persisted
// record carries all of them.
var Sections = []Section{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
}

// NoInformation is the sentinel rendered for a section the extraction
// service returned nothing for, so a stored section is never blank.
const NoInformation = "No information available"
