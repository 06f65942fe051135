package lexicon

import "github.com/cortexmed/clinextract/pkg/types/clinical"

// defaultStopwords are tokens that exist in vocabularies but produce noise
// when extracted from narrative text ("room air", "vitals stable").
var defaultStopwords = []string{
	"a", "an", "the", "is", "are", "was", "were", "be", "been",
	"or", "and", "but", "if", "then", "so", "as", "at", "by", "for",
	"from", "in", "into", "of", "on", "to", "with", "without",
	"yes", "no", "not", "can", "will", "may", "has", "had", "have",
	"all", "any", "some", "one", "two", "per", "mg", "ml",
	"air", "water", "normal", "stable", "pain", "use", "day", "time",
	"room", "well", "new", "old", "left", "right", "patient",
}

// defaultConditionEntries covers the conditions most frequently abbreviated in
// inpatient notes, mapped to their canonical variants.
var defaultConditionEntries = []Entry{
	{Surface: "type 2 diabetes mellitus"},
	{Surface: "type 1 diabetes mellitus"},
	{Surface: "diabetes mellitus", Variant: "type 2 diabetes mellitus"},
	{Surface: "type 2 diabetes", Variant: "type 2 diabetes mellitus"},
	{Surface: "type 1 diabetes", Variant: "type 1 diabetes mellitus"},
	{Surface: "diabetes", Variant: "type 2 diabetes mellitus"},
	{Surface: "dm", Variant: "type 2 diabetes mellitus"},
	{Surface: "dm2", Variant: "type 2 diabetes mellitus"},
	{Surface: "dm1", Variant: "type 1 diabetes mellitus"},
	{Surface: "t2dm", Variant: "type 2 diabetes mellitus"},
	{Surface: "t1dm", Variant: "type 1 diabetes mellitus"},
	{Surface: "niddm", Variant: "type 2 diabetes mellitus"},
	{Surface: "iddm", Variant: "type 1 diabetes mellitus"},
	{Surface: "diabetic ketoacidosis"},
	{Surface: "dka", Variant: "diabetic ketoacidosis"},

	{Surface: "hypertension"},
	{Surface: "htn", Variant: "hypertension"},
	{Surface: "high blood pressure", Variant: "hypertension"},
	{Surface: "elevated blood pressure", Variant: "hypertension"},

	{Surface: "heart failure"},
	{Surface: "congestive heart failure", Variant: "heart failure"},
	{Surface: "chf", Variant: "heart failure"},
	{Surface: "hfref", Variant: "heart failure with reduced ejection fraction"},
	{Surface: "hfpef", Variant: "heart failure with preserved ejection fraction"},
	{Surface: "coronary artery disease"},
	{Surface: "cad", Variant: "coronary artery disease"},
	{Surface: "myocardial infarction"},
	{Surface: "atrial fibrillation"},
	{Surface: "afib", Variant: "atrial fibrillation"},
	{Surface: "a-fib", Variant: "atrial fibrillation"},
	{Surface: "mitral stenosis"},

	{Surface: "chronic kidney disease"},
	{Surface: "ckd", Variant: "chronic kidney disease"},
	{Surface: "acute kidney injury"},
	{Surface: "aki", Variant: "acute kidney injury"},
	{Surface: "acute renal failure", Variant: "acute kidney injury"},
	{Surface: "end-stage renal disease"},
	{Surface: "esrd", Variant: "end-stage renal disease"},

	{Surface: "chronic obstructive pulmonary disease"},
	{Surface: "copd", Variant: "chronic obstructive pulmonary disease"},
	{Surface: "aecopd", Variant: "chronic obstructive pulmonary disease with acute exacerbation"},
	{Surface: "asthma"},
	{Surface: "pneumonia"},
	{Surface: "pulmonary embolism"},
	{Surface: "deep vein thrombosis"},
	{Surface: "dvt", Variant: "deep vein thrombosis"},
	{Surface: "obstructive sleep apnea"},
	{Surface: "osa", Variant: "obstructive sleep apnea"},
	{Surface: "pleural effusion"},

	{Surface: "gastroesophageal reflux disease"},
	{Surface: "gerd", Variant: "gastroesophageal reflux disease"},

	{Surface: "stroke"},
	{Surface: "cva", Variant: "stroke"},
	{Surface: "transient ischemic attack"},
	{Surface: "tia", Variant: "transient ischemic attack"},
	{Surface: "multiple sclerosis"},
	{Surface: "seizure"},
	{Surface: "migraine"},
	{Surface: "generalized anxiety disorder"},
	{Surface: "gad", Variant: "generalized anxiety disorder"},
	{Surface: "depression"},

	{Surface: "benign prostatic hyperplasia"},
	{Surface: "bph", Variant: "benign prostatic hyperplasia"},
	{Surface: "urinary tract infection"},
	{Surface: "uti", Variant: "urinary tract infection"},
	{Surface: "upper respiratory infection"},
	{Surface: "uri", Variant: "upper respiratory infection"},
	{Surface: "sepsis"},
	{Surface: "anemia"},
	{Surface: "hyperlipidemia"},
	{Surface: "hypothyroidism"},
	{Surface: "colon cancer"},
	{Surface: "breast cancer"},
	{Surface: "lung cancer"},
	{Surface: "osteoarthritis"},
	{Surface: "rheumatoid arthritis"},
	{Surface: "cellulitis"},
	{Surface: "gout"},
}

// defaultFindingEntries are symptoms and exam findings.
var defaultFindingEntries = []Entry{
	{Surface: "chest pain"},
	{Surface: "shortness of breath"},
	{Surface: "sob", Variant: "shortness of breath"},
	{Surface: "dyspnea", Variant: "shortness of breath"},
	{Surface: "fever"},
	{Surface: "chills"},
	{Surface: "cough"},
	{Surface: "fatigue"},
	{Surface: "nausea"},
	{Surface: "vomiting"},
	{Surface: "nausea and vomiting"},
	{Surface: "n/v", Variant: "nausea and vomiting"},
	{Surface: "diarrhea"},
	{Surface: "constipation"},
	{Surface: "headache"},
	{Surface: "ha", Variant: "headache"},
	{Surface: "dizziness"},
	{Surface: "syncope"},
	{Surface: "palpitations"},
	{Surface: "edema"},
	{Surface: "lower extremity edema"},
	{Surface: "abdominal pain"},
	{Surface: "back pain"},
	{Surface: "weight loss"},
	{Surface: "weight gain"},
	{Surface: "rash"},
	{Surface: "wheezing"},
	{Surface: "crackles"},
	{Surface: "rales", Variant: "crackles"},
	{Surface: "murmur"},
	{Surface: "jaundice"},
	{Surface: "hematuria"},
	{Surface: "dysuria"},
	{Surface: "hemoptysis"},
	{Surface: "melena"},
	{Surface: "altered mental status"},
	{Surface: "ams", Variant: "altered mental status"},
}

// defaultDrugEntries map brand names to generic names the way pharmacy
// normalization does.
var defaultDrugEntries = []Entry{
	{Surface: "metformin"},
	{Surface: "glucophage", Variant: "metformin"},
	{Surface: "insulin glargine"},
	{Surface: "lantus", Variant: "insulin glargine"},
	{Surface: "insulin lispro"},
	{Surface: "humalog", Variant: "insulin lispro"},
	{Surface: "insulin aspart"},
	{Surface: "novolog", Variant: "insulin aspart"},
	{Surface: "furosemide"},
	{Surface: "lasix", Variant: "furosemide"},
	{Surface: "carvedilol"},
	{Surface: "coreg", Variant: "carvedilol"},
	{Surface: "metoprolol"},
	{Surface: "lopressor", Variant: "metoprolol"},
	{Surface: "toprol", Variant: "metoprolol"},
	{Surface: "amlodipine"},
	{Surface: "norvasc", Variant: "amlodipine"},
	{Surface: "lisinopril"},
	{Surface: "zestril", Variant: "lisinopril"},
	{Surface: "prinivil", Variant: "lisinopril"},
	{Surface: "spironolactone"},
	{Surface: "aldactone", Variant: "spironolactone"},
	{Surface: "atorvastatin"},
	{Surface: "lipitor", Variant: "atorvastatin"},
	{Surface: "rosuvastatin"},
	{Surface: "crestor", Variant: "rosuvastatin"},
	{Surface: "warfarin"},
	{Surface: "coumadin", Variant: "warfarin"},
	{Surface: "apixaban"},
	{Surface: "eliquis", Variant: "apixaban"},
	{Surface: "rivaroxaban"},
	{Surface: "xarelto", Variant: "rivaroxaban"},
	{Surface: "clopidogrel"},
	{Surface: "plavix", Variant: "clopidogrel"},
	{Surface: "aspirin"},
	{Surface: "heparin"},
	{Surface: "pantoprazole"},
	{Surface: "protonix", Variant: "pantoprazole"},
	{Surface: "omeprazole"},
	{Surface: "prilosec", Variant: "omeprazole"},
	{Surface: "esomeprazole"},
	{Surface: "nexium", Variant: "esomeprazole"},
	{Surface: "ondansetron"},
	{Surface: "zofran", Variant: "ondansetron"},
	{Surface: "diphenhydramine"},
	{Surface: "benadryl", Variant: "diphenhydramine"},
	{Surface: "acetaminophen"},
	{Surface: "tylenol", Variant: "acetaminophen"},
	{Surface: "ibuprofen"},
	{Surface: "advil", Variant: "ibuprofen"},
	{Surface: "motrin", Variant: "ibuprofen"},
	{Surface: "naproxen"},
	{Surface: "aleve", Variant: "naproxen"},
	{Surface: "sertraline"},
	{Surface: "zoloft", Variant: "sertraline"},
	{Surface: "tiotropium"},
	{Surface: "spiriva", Variant: "tiotropium"},
	{Surface: "tamsulosin"},
	{Surface: "flomax", Variant: "tamsulosin"},
	{Surface: "alendronate"},
	{Surface: "fosamax", Variant: "alendronate"},
	{Surface: "albuterol"},
	{Surface: "prednisone"},
	{Surface: "azithromycin"},
	{Surface: "ceftriaxone"},
	{Surface: "vancomycin"},
	{Surface: "levothyroxine"},
	{Surface: "gabapentin"},
	{Surface: "hydrochlorothiazide"},
	{Surface: "hctz", Variant: "hydrochlorothiazide"},
}

// defaultProcedureEntries are common inpatient procedures.
var defaultProcedureEntries = []Entry{
	{Surface: "cardiac catheterization"},
	{Surface: "coronary artery bypass graft"},
	{Surface: "cabg", Variant: "coronary artery bypass graft"},
	{Surface: "percutaneous coronary intervention"},
	{Surface: "pci", Variant: "percutaneous coronary intervention"},
	{Surface: "appendectomy"},
	{Surface: "cholecystectomy"},
	{Surface: "colonoscopy"},
	{Surface: "endoscopy"},
	{Surface: "hemodialysis"},
	{Surface: "dialysis", Variant: "hemodialysis"},
	{Surface: "intubation"},
	{Surface: "mechanical ventilation"},
	{Surface: "thoracentesis"},
	{Surface: "paracentesis"},
	{Surface: "lumbar puncture"},
	{Surface: "echocardiogram"},
	{Surface: "echo", Variant: "echocardiogram"},
	{Surface: "chest x-ray"},
	{Surface: "cxr", Variant: "chest x-ray"},
	{Surface: "ct scan"},
	{Surface: "mri"},
	{Surface: "total knee replacement"},
	{Surface: "total hip replacement"},
	{Surface: "hip replacement", Variant: "total hip replacement"},
	{Surface: "knee replacement", Variant: "total knee replacement"},
}

// DefaultTables returns the compiled-in trigger tables for all domains.
func DefaultTables() []Table {
	return []Table{
		{Domain: clinical.DomainCondition, Entries: defaultConditionEntries},
		{Domain: clinical.DomainFinding, Entries: defaultFindingEntries},
		{Domain: clinical.DomainDrug, Entries: defaultDrugEntries},
		{Domain: clinical.DomainProcedure, Entries: defaultProcedureEntries},
	}
}

// DefaultStopwords returns the compiled-in stopword list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Default builds the compiled-in Lexicon.  It never fails; a failure here is
// a programming error in the default tables.
func Default() *Lexicon {
	lx, err := New(DefaultTables(), DefaultStopwords())
	if err != nil {
		panic(err)
	}
	return lx
}
