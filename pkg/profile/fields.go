package profile

// The report API keys every cell by an opaque column id. These maps bind
// logical field names to the ids each report kind uses. Logical names
// ending in "_count" or "date" pick up the shared coercion rules in
// findValues. Exported so the test fixtures can build payloads.

// ListFields are the officer list columns.
var ListFields = map[string]string{
	"full_name":         "85ed4926-7d4c-4771-a921-f5fe84ac2acc",
	"command":           "634ce95e-3d6d-48f6-a4d2-08feb790da5c",
	"rank":              "68ffdffb-f776-46cf-aac1-2b44d81d8ba4",
	"shield_no":         "0c100529-fe3b-4bf0-8525-559b1a64f9b0",
	"appt_date":         "8248c3a6-cefe-456d-be0a-92db9dc2e2d4",
	"recognition_count": "dedfe766-8ca6-4d0d-adc8-1aef44e6dbd8",
	"arrest_count":      "c10b2ff4-08a6-45f6-ab18-c6d06e6f43b2",
}

// SummaryFields are the profile summary items.
var SummaryFields = map[string]string{
	"command":         "1692f3bf-ed70-4b4a-96a1-9131427e4de9",
	"assignment_date": "8a2bcb6f-e064-44f4-8a58-8f38aa6ebae9",
	"ethnicity":       "0ec90f94-b636-474c-bec7-ab04e73540ed",
	"rank_desc":       "a2fded09-5439-4b17-9da8-81a5643ec3e8",
	"shield_no":       "42f74dfc-ee54-4b25-822f-415615d22aa9",
	"appt_date":       "20e891ce-1dcf-4d46-9185-075336788d65",
}

// RankFields are the rank history columns.
var RankFields = map[string]string{
	"rank":      "31d512d9-6bac-45d4-8ab2-cbd951e3f216",
	"date":      "74cead80-e1af-4aa3-9fa0-1dbf30bdf55b",
	"shield_no": "a5a69be2-3fe2-41d6-b174-b6c623cbe702",
}

// DocumentFields are the document list columns. The url value arrives as
// markup with the target inside a quoted attribute.
var DocumentFields = map[string]string{
	"date": "0ecf6c5c-f9a1-4c90-9203-d6518e62937f",
	"url":  "d6458572-9ecb-438c-8f8e-c56e070c91ba",
	"type": "a34289c9-59e6-4b85-abcf-92ff96a36e05",
}

// DisciplineFields are the discipline entry columns. "entry" is a date
// string that also serves as the upstream's child correlation key.
var DisciplineFields = map[string]string{
	"entry":             "56baedfe-465d-4812-8dae-9bf94c240bbe",
	"charges_count":     "e495a851-c40e-4d96-9eb6-96352ce069df",
	"allegations_count": "72e31e54-8c09-4aab-a7e5-3e79e7db1f06",
}

// ChargeFields are the discipline charge detail columns.
var ChargeFields = map[string]string{
	"disposition": "89d621a3-195c-4d07-b553-34d82a782012",
	"command":     "a11835db-a8f3-4c40-8db5-71685a85f500",
	"case_no":     "358a34a8-0e10-479b-b04f-a0838220cba8",
	"description": "ce5bb063-0f02-46ab-888a-b96c598e3c71",
}

// AllegationFields are the discipline allegation detail columns.
var AllegationFields = map[string]string{
	"case_no":        "b2f41e3b-3bc6-4e94-8f7b-2f1a8ed6a51c",
	"description":    "0d6f4ac5-9e94-4a8f-b2cd-58b27a93c1e4",
	"recommendation": "63a2c7b1-4f2e-4a0d-9dd0-6f8b19a3e7d2",
}

// ArrestFields are the arrest tally columns.
var ArrestFields = map[string]string{
	"classification": "984f6c06-6898-4c5d-8cc2-c7cf0dc7394e",
	"arrest_count":   "26eb8cd3-e8cf-4494-a9f7-9a78de429d34",
}

// TrainingFields are the training history columns.
var TrainingFields = map[string]string{
	"date": "51a518fa-b16b-421c-8c72-c713ecfc5583",
	"name": "86c44195-8f19-4aac-bfb0-2bedc5a8047f",
}

// AwardFields are the awards columns.
var AwardFields = map[string]string{
	"date": "ef49fd43-d1a3-4782-ab69-438c0ed05752",
	"name": "6021827e-ebd8-473e-934e-867ebcbc8ce6",
}

// TrialFields are the trial-decision document columns. "officers" is a
// semicolon-joined name list; "taxids" is a parallel comma-joined list
// covering only the non-retired names.
var TrialFields = map[string]string{
	"date":     "4f2a9c1e-7b3d-4e6a-9f05-1c8d2b7a64e9",
	"url":      "8c5e1f7a-2d94-4b3c-a6e8-0f9b3d1c52a7",
	"officers": "d1b7e93c-6a25-48f0-bc41-7e2a9f05d638",
	"taxids":   "2e8a4c06-9f71-4d5b-8a3e-6b0c1d9e74f2",
}
