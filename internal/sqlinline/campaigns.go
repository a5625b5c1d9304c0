package sqlinline

const QGetCampaignBySlug = `--sql 3f2c1a84-9d0e-4f6b-8a21-5c47e0d9b312
select id, slug, title, status, target_amount, current_amount, donation_count, created_at, updated_at
from campaigns
where slug = $1::text;
`

const QGetCampaignByID = `--sql b7a94d02-61c8-4e35-9f70-12d3a8c4e5f6
select id, slug, title, status, target_amount, current_amount, donation_count, created_at, updated_at
from campaigns
where id = $1::uuid;
`
