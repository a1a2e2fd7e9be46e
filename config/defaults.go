package config

// DefaultYAML is used when no config file is found. The statement list is
// ordered: detection tries each entry in turn, so narrower signatures come
// before broad ones.
const DefaultYAML = `
log:
  format: console
server:
  port: "8080"
  max_upload_mb: 32
  cors_origins: ["*"]
statement:
  - id: tymebank
    name: TymeBank
    keywords: ["tymebank", "tyme bank"]
    patterns:
      date: '(?i)^(\d{2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4})'
      amount: '[\d\s]+\.\d{2}'
      description_prefix: '^\s*-\s*'
      account_number: '(?i)Account\s*Num\.?\s*(\d{11})'
      account_everyday: '(?i)EveryDay\s+account\s+(\d{11})'
  - id: african_bank
    name: African Bank
    keywords: ["african bank", "africanbank"]
    patterns:
      date: '^(\d{4}/\d{2}/\d{2})'
      amount: '-?[\d,]+\.\d{2}'
      account_number: '(?i)Account\s*Number\s*(\d{11})'
      account_type: '(?i)Account\s*Type\s+([A-Za-z\s]+?)(?:\n|Account)'
  - id: hbz_bank
    name: HBZ Bank
    keywords: ["hbz bank"]
    patterns:
      date: '(?i)^((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},\s+\d{4})'
      amount: '[\d,]+\.\d{2}'
      account_number: '(?i)Account\s+(\d{2}-\d{2}-\d{2}-\d{5}-\d{3}-\d{6})'
      account_type: '(?i)Type\s+(Current Account|Savings Account)'
  - id: discovery_bank
    name: Discovery Bank
    keywords: ["discovery"]
    patterns:
      date_iso: '^(\d{4})-(\d{2})-(\d{2})\b'
      date_text: '(?i)^(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4})'
      amount: '-?\s*R?\s*[\d\s,]+\.\d{2}'
      card_prefix: '^\*{3}\d+\s*'
      kind_prefix: '(?i)^(EFT|Fee|Debit order)\s*'
      account_number: '(?i)(?:Discovery\s+)?(?:Gold|Purple|Orange)?\s*(?:Transaction\s+)?Account\s*(\d{11})'
      account_type: '(?i)(Discovery\s+(?:Gold|Purple|Orange)\s+(?:Transaction\s+)?Account)'
  - id: investec
    name: Investec
    keywords: ["investec"]
    patterns:
      date: '(?i)^(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4})'
      amount: '[\d,]+\.\d{2}'
      account_number: '(?i)Account\s*Number\s*(\d{11})'
  - id: bidvest
    name: Bidvest Bank
    keywords: ["bidvest"]
    patterns:
      date: '^(\d{4}/\d{2}/\d{2})'
      effective_date: '^\d{4}/\d{2}/\d{2}\s*'
      amount: '-?\s*[\d\s]+\.\d{2}'
      account_number: '(?i)Account\s*No[:\s]*(\d{11})'
      account_type: '(?i)Account\s*Statement[:\s]*([A-Za-z\s]+?)(?:\s{2,}|Account No|\n)'
  - id: absa
    name: ABSA
    keywords: ["absa"]
    patterns:
      date: '^(\d{1,2}/\d{1,2}/\d{4})'
      amount: '[\d\s]+\.\d{2}'
      description_suffix: '(?i)\s*(Headoffice|Settlement|Notifyme|Sms Notifications)\s*$'
      account_number: '(?i)(?:Cheque\s*)?Account\s*Number[:\s]*(\d{2}-\d{4}-\d{4})'
      account_number_plain: '(?i)Account\s*Number[:\s]*(\d{10,12})'
      account_type: '(?i)Account\s*Type[:\s]*([A-Za-z\s]+?)(?:\s{2,}|Issued|Statement|\n)'
  - id: nedbank
    name: Nedbank
    keywords: ["nedbank"]
    patterns:
      date_tran: '^\d{6}\s+(\d{2}/\d{2}/\d{4})'
      date: '^(\d{2}/\d{2}/\d{4})'
      date_inline: '\s(\d{2}/\d{2}/\d{4})\s'
      amount: '[\d,]+\.\d{2}'
      account_number: '(\d{10})'
      account_number_bare: '\b(\d{10})\b'
  - id: standard_bank
    name: Standard Bank
    keywords: ["standard bank"]
    patterns:
      date: '(?i)^(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{2})\b'
      amount: '-?[\d,]+\.\d{2}'
      account_number: '(?i)Account\s*number[:\s]*([\d\s]{10,20})'
      account_type: '(?i)Product\s*name[:\s]*([A-Z\s]+?)(?:\n|$)'
  - id: fnb
    name: FNB
    keywords: ["fnb", "first national bank"]
    patterns:
      date_year: '(?i)^(\d{2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{4})\b'
      date_short: '(?i)^(\d{2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b'
      amount_marked: '(?i)[\d,]+\.\d{2}\s*(?:CR|DR)'
      amount_plain: '[\d,]+\.?\d*'
      amount_plain_start: '[\d,]+\.?\d+'
      account_selected: '(?i)Selected\s*Account\s*[:\s]+(\d{10,12})'
      account_nickname: '(?i)Nickname\s*[:\s]+([\w\s]+?)(?:\n|Selected)'
      account_named: '([\w\s]+Account)\s*[:\s]+(\d{10,12})'
      account_number: '(?i)Account\s*Number[:\s]*(\d{10,12})'
  - id: capitec
    name: Capitec
    keywords: ["capitec"]
    patterns:
      date: '^\d{2}/\d{2}/\d{4}'
      amount: '-?\d{1,3}(?: \d{3})*\.\d{2}'
      account_number: '\d{8,12}'
`
