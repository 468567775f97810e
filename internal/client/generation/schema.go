package generation

import "github.com/dmitrijs2005/atscv/internal/client/ai"

var stringList = &ai.Schema{Type: ai.TypeArray, Items: &ai.Schema{Type: ai.TypeString}}

// ProfileSchema is the shape requested when extracting a profile from CV
// text.
var ProfileSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"personalInfo": {
			Type: ai.TypeObject,
			Properties: map[string]*ai.Schema{
				"name":      {Type: ai.TypeString},
				"email":     {Type: ai.TypeString},
				"phone":     {Type: ai.TypeString},
				"linkedin":  {Type: ai.TypeString},
				"github":    {Type: ai.TypeString},
				"portfolio": {Type: ai.TypeString},
			},
			Required: []string{"name", "email", "phone"},
		},
		"summary": {Type: ai.TypeString},
		"workExperience": {
			Type: ai.TypeArray,
			Items: &ai.Schema{
				Type: ai.TypeObject,
				Properties: map[string]*ai.Schema{
					"jobTitle":         {Type: ai.TypeString},
					"company":          {Type: ai.TypeString},
					"location":         {Type: ai.TypeString},
					"startDate":        {Type: ai.TypeString},
					"endDate":          {Type: ai.TypeString},
					"responsibilities": stringList,
				},
				Required: []string{"jobTitle", "company", "startDate", "endDate", "responsibilities"},
			},
		},
		"education": {
			Type: ai.TypeArray,
			Items: &ai.Schema{
				Type: ai.TypeObject,
				Properties: map[string]*ai.Schema{
					"degree":         {Type: ai.TypeString},
					"institution":    {Type: ai.TypeString},
					"location":       {Type: ai.TypeString},
					"graduationDate": {Type: ai.TypeString},
				},
				Required: []string{"degree", "institution", "graduationDate"},
			},
		},
		"skills": stringList,
	},
	Required: []string{"personalInfo", "summary", "workExperience", "education", "skills"},
}
